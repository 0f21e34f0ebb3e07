package activity

import (
	"context"
	"fmt"
	"strings"
)

// Record is a raw row returned by an adapter's Query. Every source model
// names its backing table, which becomes the activity's SourceTable.
type Record interface {
	TableName() string
}

// Adapter exposes one event log to the Aggregator.
//
// Query returns rows matching subjectID and f, newest first, bounded by
// f.Limit and f.Offset. Count returns the number of rows matching the same
// predicates regardless of f.Limit and f.Offset. Both only apply the filter
// fields that make sense for the adapter's schema and ignore the rest.
//
// Transform maps one row returned by Query into a UnifiedActivity, rendering
// its description through Describe.
type Adapter interface {
	Name() string
	Category() Category
	EventTypes() []string
	Query(ctx context.Context, subjectID string, f Filters) ([]Record, error)
	Count(ctx context.Context, subjectID string, f Filters) (int64, error)
	Transform(rec Record) UnifiedActivity
	Describe(eventType string, metadata Metadata) string
}

// Operation names an adapter call for logging and metrics.
type Operation string

const (
	OperationQuery Operation = "query"
	OperationCount Operation = "count"
)

// AdapterError reports a failed adapter call. The Aggregator logs these and
// never returns them to its caller.
type AdapterError struct {
	Adapter   string
	Operation Operation
	Err       error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("activity adapter %s: %s failed: %v", e.Adapter, e.Operation, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// SelectEventTypes intersects the requested event types with the ones an
// adapter recognizes. It returns (nil, true) when no event type filter is
// set, and (nil, false) when the filter is set but none of the requested
// types belong to the adapter, meaning the adapter has nothing to return.
func SelectEventTypes(requested, known []string) ([]string, bool) {
	if len(requested) == 0 {
		return nil, true
	}
	allowed := make(map[string]struct{}, len(known))
	for _, et := range known {
		allowed[et] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(requested))
	for _, et := range requested {
		et = strings.ToUpper(strings.TrimSpace(et))
		if _, ok := allowed[et]; !ok {
			continue
		}
		if _, dup := seen[et]; dup {
			continue
		}
		seen[et] = struct{}{}
		out = append(out, et)
	}
	return out, len(out) > 0
}

// LabelMatches returns the event types whose rendered label, without any
// metadata, contains search (case-insensitive). Adapters OR these into their
// text search so that "password" finds PASSWORD_CHANGED rows even when no
// column contains the word.
func LabelMatches(search string, known []string, describe func(eventType string, metadata Metadata) string) []string {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil
	}
	var out []string
	for _, et := range known {
		label := strings.ToLower(describe(et, nil))
		if strings.Contains(label, needle) || strings.Contains(strings.ToLower(et), needle) {
			out = append(out, et)
		}
	}
	return out
}
