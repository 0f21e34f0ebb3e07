// Package sources implements activity adapters over the GORM-managed event
// tables, one adapter per category.
package sources

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/pagination"
)

// scopeFunc restricts a query to the rows visible to subjectID under f.
type scopeFunc func(q *gorm.DB, subjectID string, f activity.Filters) *gorm.DB

// table holds what every GORM-backed adapter shares: the query and count
// plumbing over one event table. Adapters embed it and add Transform and
// Describe for their own schema.
type table[T activity.Record] struct {
	db            *gorm.DB
	name          string
	category      activity.Category
	eventTypes    []string
	searchColumns []string
	scope         scopeFunc
	describe      func(eventType string, metadata activity.Metadata) string
}

func (t *table[T]) Name() string                { return t.name }
func (t *table[T]) Category() activity.Category { return t.category }

func (t *table[T]) EventTypes() []string {
	out := make([]string, len(t.eventTypes))
	copy(out, t.eventTypes)
	return out
}

// Query returns matching rows newest first within [f.Offset, f.Offset+f.Limit).
func (t *table[T]) Query(ctx context.Context, subjectID string, f activity.Filters) ([]activity.Record, error) {
	q, ok := t.filtered(ctx, subjectID, f)
	if !ok {
		return nil, nil
	}

	var rows []T
	if err := q.Scopes(pagination.Window(f.Offset, f.Limit)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]activity.Record, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out, nil
}

// Count returns the number of rows matching f, ignoring f.Limit and f.Offset.
func (t *table[T]) Count(ctx context.Context, subjectID string, f activity.Filters) (int64, error) {
	q, ok := t.filtered(ctx, subjectID, f)
	if !ok {
		return 0, nil
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// filtered builds the predicate shared by Query and Count. It reports false
// when the event type filter excludes every type this table holds.
func (t *table[T]) filtered(ctx context.Context, subjectID string, f activity.Filters) (*gorm.DB, bool) {
	types, ok := activity.SelectEventTypes(f.EventTypes, t.eventTypes)
	if !ok {
		return nil, false
	}

	var model T
	q := t.db.WithContext(ctx).Model(&model)
	q = t.scope(q, subjectID, f)

	if len(types) > 0 {
		q = q.Where("event_type IN ?", types)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		clause, args := t.searchClause(search)
		q = q.Where(clause, args...)
	}
	return q, true
}

// searchClause ORs a case-insensitive substring match over the table's text
// columns and metadata values with the event types whose label matches.
func (t *table[T]) searchClause(search string) (string, []interface{}) {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"

	parts := make([]string, 0, len(t.searchColumns)+2)
	args := make([]interface{}, 0, len(t.searchColumns)+2)
	for _, col := range t.searchColumns {
		parts = append(parts, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	parts = append(parts, t.metadataValueMatch())
	args = append(args, pattern)

	if t.describe != nil {
		if labelled := activity.LabelMatches(search, t.eventTypes, t.describe); len(labelled) > 0 {
			parts = append(parts, "event_type IN ?")
			args = append(args, labelled)
		}
	}

	return "(" + strings.Join(parts, " OR ") + ")", args
}

// metadataValueMatch matches pattern against the top-level metadata values
// only, so key names and JSON punctuation never match.
func (t *table[T]) metadataValueMatch() string {
	switch t.db.Dialector.Name() {
	case "postgres":
		return `EXISTS (SELECT 1 FROM jsonb_each_text(metadata) AS kv WHERE LOWER(kv.value) LIKE ? ESCAPE '\')`
	case "sqlite":
		return `EXISTS (SELECT 1 FROM json_each(metadata) AS kv WHERE LOWER(kv.value) LIKE ? ESCAPE '\')`
	default:
		return `LOWER(CAST(metadata AS TEXT)) LIKE ? ESCAPE '\'`
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// byUser scopes rows to the subject through column.
func byUser(column string) scopeFunc {
	return func(q *gorm.DB, subjectID string, _ activity.Filters) *gorm.DB {
		return q.Where(column+" = ?", subjectID)
	}
}

// byOrganizationOrUser scopes rows to f.OrganizationID when set and to the
// subject through userColumn otherwise. A portal selector further narrows
// either scope.
func byOrganizationOrUser(userColumn string) scopeFunc {
	return func(q *gorm.DB, subjectID string, f activity.Filters) *gorm.DB {
		if f.OrganizationID != "" {
			q = q.Where("organization_id = ?", f.OrganizationID)
		} else {
			q = q.Where(userColumn+" = ?", subjectID)
		}
		if f.Portal != "" {
			q = q.Where("portal = ?", f.Portal)
		}
		return q
	}
}

// asRow unwraps a record produced by table[T].Query, which stores T values.
func asRow[T activity.Record](rec activity.Record) (T, bool) {
	v, ok := rec.(T)
	return v, ok
}

func metadataOf(m map[string]interface{}) activity.Metadata {
	if m == nil {
		return activity.Metadata{}
	}
	return activity.Metadata(m)
}
