package activity

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// fakeRow is the raw record type of fakeAdapter.
type fakeRow struct {
	id        string
	table     string
	eventType string
	at        time.Time
}

func (r fakeRow) TableName() string { return r.table }

// fakeAdapter serves rows from memory and can be told to fail, panic or hang.
type fakeAdapter struct {
	name     string
	category Category
	rows     []fakeRow

	queryErr   error
	countErr   error
	panicQuery bool
	hang       bool

	queries  atomic.Int32
	lastSeen atomic.Value // Filters passed to Query
}

func newFakeAdapter(name string, category Category, rows ...fakeRow) *fakeAdapter {
	for i := range rows {
		if rows[i].table == "" {
			rows[i].table = name + "_events"
		}
		if rows[i].eventType == "" {
			rows[i].eventType = "EVENT_RECORDED"
		}
	}
	return &fakeAdapter{name: name, category: category, rows: rows}
}

func (f *fakeAdapter) Name() string       { return f.name }
func (f *fakeAdapter) Category() Category { return f.category }
func (f *fakeAdapter) EventTypes() []string {
	return []string{"EVENT_RECORDED", "PASSWORD_CHANGED"}
}

func (f *fakeAdapter) matching(filters Filters) []fakeRow {
	var out []fakeRow
	for _, r := range f.rows {
		if filters.Search != "" && !strings.Contains(strings.ToLower(r.eventType), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.StartDate != nil && r.at.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && r.at.After(*filters.EndDate) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].at.Equal(out[j].at) {
			return out[i].at.After(out[j].at)
		}
		return out[i].id > out[j].id
	})
	return out
}

func (f *fakeAdapter) Query(ctx context.Context, _ string, filters Filters) ([]Record, error) {
	f.queries.Add(1)
	f.lastSeen.Store(filters)
	if f.hang {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	if f.panicQuery {
		panic("source exploded")
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	rows := f.matching(filters)
	if filters.Offset < len(rows) {
		rows = rows[filters.Offset:]
	} else {
		rows = nil
	}
	if filters.Limit > 0 && len(rows) > filters.Limit {
		rows = rows[:filters.Limit]
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

func (f *fakeAdapter) Count(_ context.Context, _ string, filters Filters) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.matching(filters))), nil
}

func (f *fakeAdapter) Transform(rec Record) UnifiedActivity {
	row := rec.(fakeRow)
	return UnifiedActivity{
		ID:          row.id,
		Category:    f.category,
		EventType:   row.eventType,
		Activity:    f.Describe(row.eventType, nil),
		CreatedAt:   row.at,
		SourceTable: row.TableName(),
	}
}

func (f *fakeAdapter) Describe(eventType string, _ Metadata) string {
	return DefaultDescription(eventType)
}

var errSourceDown = errors.New("source down")

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}
