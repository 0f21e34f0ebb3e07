package activity

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"
)

func mustRegistry(t *testing.T, adapters ...Adapter) *Registry {
	t.Helper()
	r, err := NewRegistry(adapters...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return r
}

func ids(activities []UnifiedActivity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.ID
	}
	return out
}

func assertIDs(t *testing.T, got []UnifiedActivity, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, gotIDs)
		}
	}
}

func TestAggregate_MergesAcrossSourcesChronologically(t *testing.T) {
	security := newFakeAdapter("security", CategorySecurity,
		fakeRow{id: "s-11", at: at(11, 0)},
		fakeRow{id: "s-09", at: at(9, 0)},
	)
	onboarding := newFakeAdapter("onboarding", CategoryOnboarding,
		fakeRow{id: "o-10", at: at(10, 0)},
	)
	agg := NewAggregator(mustRegistry(t, security, onboarding))

	t.Run("first page holds every record newest first", func(t *testing.T) {
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, res.Activities, "s-11", "o-10", "s-09")
		if res.Total != 3 {
			t.Errorf("expected total 3, got %d", res.Total)
		}
	})

	t.Run("limit 1 offset 1 returns the 10:00 record", func(t *testing.T) {
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, res.Activities, "o-10")
		if res.Activities[0].Category != CategoryOnboarding {
			t.Errorf("expected onboarding category, got %s", res.Activities[0].Category)
		}
	})
}

func TestAggregate_SingleSourcePagination(t *testing.T) {
	var rows []fakeRow
	for i := 0; i < 15; i++ {
		rows = append(rows, fakeRow{id: fmt.Sprintf("s-%02d", i), at: at(8, i)})
	}
	security := newFakeAdapter("security", CategorySecurity, rows...)
	agg := NewAggregator(mustRegistry(t, security))

	first, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Activities) != 10 || first.Total != 15 {
		t.Fatalf("expected 10 items of 15, got %d of %d", len(first.Activities), first.Total)
	}

	second, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Activities) != 5 || second.Total != 15 {
		t.Fatalf("expected 5 items of 15, got %d of %d", len(second.Activities), second.Total)
	}
	assertIDs(t, second.Activities, "s-04", "s-03", "s-02", "s-01", "s-00")

	beyond, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Offset: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beyond.Activities) != 0 || beyond.Activities == nil {
		t.Errorf("expected empty non-nil page past the end, got %v", beyond.Activities)
	}
}

func TestAggregate_OverFetchesEachSource(t *testing.T) {
	security := newFakeAdapter("security", CategorySecurity, fakeRow{id: "s", at: at(9, 0)})
	agg := NewAggregator(mustRegistry(t, security))

	if _, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 5, Offset: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := security.lastSeen.Load().(Filters)
	if seen.Offset != 0 || seen.Limit != 25 {
		t.Errorf("expected source window offset=0 limit=25, got offset=%d limit=%d", seen.Offset, seen.Limit)
	}
}

func TestAggregate_OffsetNearMaxIntReturnsEmptyPage(t *testing.T) {
	security := newFakeAdapter("security", CategorySecurity,
		fakeRow{id: "s-1", at: at(9, 0)},
		fakeRow{id: "s-2", at: at(10, 0)},
	)
	agg := NewAggregator(mustRegistry(t, security))

	res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 4, Offset: math.MaxInt - 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Activities) != 0 {
		t.Errorf("expected no activities past the end, got %v", ids(res.Activities))
	}
	if res.Total != 2 {
		t.Errorf("expected total 2, got %d", res.Total)
	}
	if n := security.queries.Load(); n != 0 {
		t.Errorf("expected no row query for an unreachable window, got %d", n)
	}
}

// buildInterleaved returns three adapters with interleaved timestamps and the
// expected global order of their ids.
func buildInterleaved(t *testing.T) (*Aggregator, []string) {
	t.Helper()
	var (
		security   []fakeRow
		onboarding []fakeRow
		document   []fakeRow
		want       []string
	)
	for minute := 59; minute >= 0; minute-- {
		id := fmt.Sprintf("m%02d", minute)
		row := fakeRow{id: id, at: at(12, minute)}
		switch {
		case minute%7 == 0:
			document = append(document, row)
		case minute%3 == 0:
			onboarding = append(onboarding, row)
		default:
			security = append(security, row)
		}
		want = append(want, id)
	}
	agg := NewAggregator(mustRegistry(t,
		newFakeAdapter("security", CategorySecurity, security...),
		newFakeAdapter("onboarding", CategoryOnboarding, onboarding...),
		newFakeAdapter("document", CategoryDocument, document...),
	))
	return agg, want
}

func TestAggregate_FirstNMatchesGlobalSort(t *testing.T) {
	agg, want := buildInterleaved(t)

	for n := 1; n <= len(want); n++ {
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: n})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		assertIDs(t, res.Activities, want[:n]...)
		if res.Total != int64(len(want)) {
			t.Fatalf("n=%d: expected total %d, got %d", n, len(want), res.Total)
		}
	}
}

func TestAggregate_PagesAreContiguous(t *testing.T) {
	agg, want := buildInterleaved(t)

	for _, size := range []int{1, 4, 7, 13} {
		var collected []string
		for offset := 0; offset < len(want); offset += size {
			res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: size, Offset: offset})
			if err != nil {
				t.Fatalf("size=%d offset=%d: unexpected error: %v", size, offset, err)
			}
			collected = append(collected, ids(res.Activities)...)
		}
		if len(collected) != len(want) {
			t.Fatalf("size=%d: expected %d items, got %d", size, len(want), len(collected))
		}
		for i := range want {
			if collected[i] != want[i] {
				t.Fatalf("size=%d: gap or duplicate at %d: got %s want %s", size, i, collected[i], want[i])
			}
		}
	}
}

func TestAggregate_CategoryFilter(t *testing.T) {
	security := newFakeAdapter("security", CategorySecurity, fakeRow{id: "s-1", at: at(9, 0)})
	onboarding := newFakeAdapter("onboarding", CategoryOnboarding, fakeRow{id: "o-1", at: at(10, 0)})
	agg := NewAggregator(mustRegistry(t, security, onboarding))

	res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Categories: []Category{CategorySecurity}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(res.Activities))
	}
	if res.Activities[0].Category != CategorySecurity {
		t.Errorf("expected security category, got %s", res.Activities[0].Category)
	}
	if res.Total != 1 {
		t.Errorf("expected total 1, got %d", res.Total)
	}
	if onboarding.queries.Load() != 0 {
		t.Error("unselected adapter must not be queried")
	}
}

func TestAggregate_FaultIsolation(t *testing.T) {
	healthyRows := []fakeRow{{id: "h-2", at: at(10, 0)}, {id: "h-1", at: at(9, 0)}}
	brokenRows := []fakeRow{{id: "b-1", at: at(11, 0)}, {id: "b-2", at: at(8, 0)}, {id: "b-3", at: at(7, 0)}}

	tests := []struct {
		name      string
		configure func(*fakeAdapter)
		wantTotal int64
	}{
		{
			name:      "query fails count succeeds",
			configure: func(f *fakeAdapter) { f.queryErr = errSourceDown },
			wantTotal: 5,
		},
		{
			name: "query and count fail",
			configure: func(f *fakeAdapter) {
				f.queryErr = errSourceDown
				f.countErr = errSourceDown
			},
			wantTotal: 2,
		},
		{
			name:      "query panics",
			configure: func(f *fakeAdapter) { f.panicQuery = true },
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthy := newFakeAdapter("security", CategorySecurity, healthyRows...)
			broken := newFakeAdapter("document", CategoryDocument, brokenRows...)
			tt.configure(broken)
			agg := NewAggregator(mustRegistry(t, healthy, broken))

			res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10})
			if err != nil {
				t.Fatalf("adapter failure must not fail the call: %v", err)
			}
			assertIDs(t, res.Activities, "h-2", "h-1")
			if res.Total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, res.Total)
			}
		})
	}
}

func TestAggregate_SlowAdapterTimesOut(t *testing.T) {
	fast := newFakeAdapter("security", CategorySecurity, fakeRow{id: "f-1", at: at(9, 0)})
	slow := newFakeAdapter("document", CategoryDocument, fakeRow{id: "s-1", at: at(10, 0)})
	slow.hang = true
	agg := NewAggregator(mustRegistry(t, fast, slow), WithAdapterTimeout(50*time.Millisecond))

	start := time.Now()
	res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("slow adapter stalled the page for %s", elapsed)
	}
	assertIDs(t, res.Activities, "f-1")
	if res.Total != 2 {
		t.Errorf("count of the slow adapter succeeded, expected total 2, got %d", res.Total)
	}
}

func TestAggregate_CountIndependentOfWindow(t *testing.T) {
	agg, want := buildInterleaved(t)

	for _, f := range []Filters{{Limit: 1}, {Limit: 5, Offset: 30}, {Limit: 100, Offset: 1000}} {
		res, err := agg.Aggregate(context.Background(), "user-1", f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Total != int64(len(want)) {
			t.Errorf("limit=%d offset=%d: expected total %d, got %d", f.Limit, f.Offset, len(want), res.Total)
		}
	}
}

func TestAggregate_UnfilteredTotal(t *testing.T) {
	security := newFakeAdapter("security", CategorySecurity,
		fakeRow{id: "s-1", eventType: "PASSWORD_CHANGED", at: at(9, 0)},
		fakeRow{id: "s-2", at: at(10, 0)},
	)
	onboarding := newFakeAdapter("onboarding", CategoryOnboarding,
		fakeRow{id: "o-1", at: at(11, 0)},
	)
	agg := NewAggregator(mustRegistry(t, security, onboarding))

	t.Run("narrowed search", func(t *testing.T) {
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Search: "password"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, res.Activities, "s-1")
		if res.Total != 1 || res.UnfilteredTotal != 3 {
			t.Errorf("expected 1 of 3, got %d of %d", res.Total, res.UnfilteredTotal)
		}
	})

	t.Run("unfiltered equals total without narrowing", func(t *testing.T) {
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10, Categories: []Category{CategorySecurity}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Total != 2 || res.UnfilteredTotal != 2 {
			t.Errorf("expected 2 of 2, got %d of %d", res.Total, res.UnfilteredTotal)
		}
	})
}

func TestAggregate_EqualTimestampsAreDeterministic(t *testing.T) {
	same := at(9, 30)
	security := newFakeAdapter("security", CategorySecurity,
		fakeRow{id: "a", table: "security_events", at: same},
		fakeRow{id: "b", table: "security_events", at: same},
	)
	document := newFakeAdapter("document", CategoryDocument,
		fakeRow{id: "z", table: "document_events", at: same},
	)

	for _, order := range [][]Adapter{{security, document}, {document, security}} {
		agg := NewAggregator(mustRegistry(t, order...))
		res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, res.Activities, "z", "b", "a")
	}
}

func TestAggregate_CancelledContext(t *testing.T) {
	agg := NewAggregator(mustRegistry(t, newFakeAdapter("security", CategorySecurity, fakeRow{id: "s", at: at(9, 0)})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := agg.Aggregate(ctx, "user-1", Filters{Limit: 10}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestAggregate_DefaultsAndConcurrencyCap(t *testing.T) {
	var rows []fakeRow
	for i := 0; i < 12; i++ {
		rows = append(rows, fakeRow{id: fmt.Sprintf("r%02d", i), at: at(6, i)})
	}
	agg := NewAggregator(mustRegistry(t,
		newFakeAdapter("security", CategorySecurity, rows...),
		newFakeAdapter("onboarding", CategoryOnboarding),
	), WithMaxConcurrency(1))

	res, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 0, Offset: -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Activities) != DefaultLimit {
		t.Errorf("expected default page size %d, got %d", DefaultLimit, len(res.Activities))
	}
	if res.Activities[0].ID != "r11" {
		t.Errorf("expected newest first, got %s", res.Activities[0].ID)
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	calls  map[string]int
	failed map[string]int
}

func (o *recordingObserver) ObserveAdapterCall(adapter string, op Operation, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := adapter + "/" + string(op)
	o.calls[key]++
	if err != nil {
		o.failed[key]++
	}
}

func TestAggregate_ReportsToObserver(t *testing.T) {
	healthy := newFakeAdapter("security", CategorySecurity, fakeRow{id: "s", at: at(9, 0)})
	broken := newFakeAdapter("document", CategoryDocument)
	broken.queryErr = errSourceDown

	obs := &recordingObserver{calls: map[string]int{}, failed: map[string]int{}}
	agg := NewAggregator(mustRegistry(t, healthy, broken), WithObserver(obs))

	if _, err := agg.Aggregate(context.Background(), "user-1", Filters{Limit: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obs.calls["security/query"] != 1 || obs.calls["security/count"] != 1 {
		t.Errorf("unexpected security calls: %v", obs.calls)
	}
	if obs.failed["document/query"] != 1 {
		t.Errorf("expected one failed document query, got %v", obs.failed)
	}
	if obs.failed["document/count"] != 0 {
		t.Errorf("document count should have succeeded, got %v", obs.failed)
	}
}
