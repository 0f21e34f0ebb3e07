package activity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"lendhub/internal/logger"
)

// DefaultLimit is the page size used when Filters.Limit is not positive.
const DefaultLimit = 10

// Observer receives the outcome of every adapter call.
type Observer interface {
	ObserveAdapterCall(adapter string, op Operation, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveAdapterCall(string, Operation, time.Duration, error) {}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithAdapterTimeout bounds every individual adapter call. A call that
// exceeds it counts as a failure of that adapter only. Zero disables it.
func WithAdapterTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.timeout = d
	}
}

// WithMaxConcurrency caps the number of adapter calls in flight for one
// aggregation. Zero or less means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(a *Aggregator) {
		a.maxConcurrency = n
	}
}

// WithObserver installs an Observer, typically the metrics collector.
func WithObserver(o Observer) Option {
	return func(a *Aggregator) {
		if o != nil {
			a.observer = o
		}
	}
}

// Aggregator merges the registered adapters into a single feed.
type Aggregator struct {
	registry       *Registry
	timeout        time.Duration
	maxConcurrency int
	observer       Observer
}

// NewAggregator creates an Aggregator reading adapters from registry.
func NewAggregator(registry *Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry: registry,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the adapter registry backing the aggregator.
func (a *Aggregator) Registry() *Registry {
	return a.registry
}

// adapterResult collects one adapter's contribution. Each field is written
// by exactly one goroutine.
type adapterResult struct {
	activities []UnifiedActivity
	total      int64
	unfiltered int64
}

// Aggregate returns the page [f.Offset, f.Offset+f.Limit) of the merged feed
// for subjectID along with exact totals.
//
// No global index spans the sources, so every selected adapter is asked for
// its first Offset+Limit rows; the page is cut only after the merge. Adapter
// failures, panics and timeouts are logged and reduce the result to the
// remaining adapters. An error is returned only when ctx itself is done.
func (a *Aggregator) Aggregate(ctx context.Context, subjectID string, f Filters) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	adapters := a.registry.Select(f)
	results := make([]adapterResult, len(adapters))

	// A window that would overflow cannot hold any row of the page, so only
	// the counts run.
	fetchRows := f.Offset <= math.MaxInt-f.Limit
	window := f
	window.Offset = 0
	if fetchRows {
		window.Limit = f.Offset + f.Limit
	}

	narrowed := f.Narrowed()
	scope := f.ScopeOnly()

	g := new(errgroup.Group)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	for i, adapter := range adapters {
		res := &results[i]

		if fetchRows {
			g.Go(func() error {
				rows, err := call(ctx, a, adapter, subjectID, OperationQuery, func(ctx context.Context) ([]UnifiedActivity, error) {
					return fetch(ctx, adapter, subjectID, window)
				})
				if err == nil {
					res.activities = rows
				}
				return nil
			})
		}

		g.Go(func() error {
			n, err := call(ctx, a, adapter, subjectID, OperationCount, func(ctx context.Context) (int64, error) {
				return adapter.Count(ctx, subjectID, f)
			})
			if err == nil {
				res.total = n
			}
			return nil
		})

		if narrowed {
			g.Go(func() error {
				n, err := call(ctx, a, adapter, subjectID, OperationCount, func(ctx context.Context) (int64, error) {
					return adapter.Count(ctx, subjectID, scope)
				})
				if err == nil {
					res.unfiltered = n
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	var merged []UnifiedActivity
	for i := range results {
		merged = append(merged, results[i].activities...)
		result.Total += results[i].total
		if narrowed {
			result.UnfilteredTotal += results[i].unfiltered
		}
	}
	if !narrowed {
		result.UnfilteredTotal = result.Total
	}

	SortActivities(merged)
	result.Activities = page(merged, f.Offset, f.Limit)
	return result, nil
}

// SortActivities orders activities newest first. Equal timestamps are broken
// by source table ascending, then id descending, which matches the order
// each source returns its own rows in.
func SortActivities(activities []UnifiedActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		a, b := activities[i], activities[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.SourceTable != b.SourceTable {
			return a.SourceTable < b.SourceTable
		}
		return a.ID > b.ID
	})
}

func page(activities []UnifiedActivity, offset, limit int) []UnifiedActivity {
	if offset >= len(activities) {
		return []UnifiedActivity{}
	}
	end := offset + limit
	if end > len(activities) {
		end = len(activities)
	}
	out := make([]UnifiedActivity, end-offset)
	copy(out, activities[offset:end])
	return out
}

func fetch(ctx context.Context, adapter Adapter, subjectID string, f Filters) ([]UnifiedActivity, error) {
	records, err := adapter.Query(ctx, subjectID, f)
	if err != nil {
		return nil, err
	}
	out := make([]UnifiedActivity, 0, len(records))
	for _, rec := range records {
		out = append(out, adapter.Transform(rec))
	}
	return out, nil
}

// call runs fn under the adapter timeout, recovering panics. When the
// timeout fires first, call returns without waiting for fn; fn's eventual
// result is discarded.
func call[T any](ctx context.Context, a *Aggregator, adapter Adapter, subjectID string, op Operation, fn func(context.Context) (T, error)) (T, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome{err: ctx.Err()}
	}

	a.observer.ObserveAdapterCall(adapter.Name(), op, time.Since(start), out.err)

	if out.err != nil {
		err := &AdapterError{Adapter: adapter.Name(), Operation: op, Err: out.err}
		logger.Get().Warnw("activity adapter failed",
			"adapter", adapter.Name(),
			"category", adapter.Category(),
			"operation", op,
			"subject_id", subjectID,
			"error", err.Error(),
		)
		var zero T
		return zero, err
	}
	return out.value, nil
}
