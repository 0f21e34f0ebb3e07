package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	tests := []struct {
		name       string
		in         PageRequest
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "zero values", in: PageRequest{}, wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "third page", in: PageRequest{Page: 3, Limit: 25}, wantPage: 3, wantLimit: 25, wantOffset: 50},
		{name: "limit clamped", in: PageRequest{Page: 2, Limit: 500}, wantPage: 2, wantLimit: 100, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Defaults()
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", p.Page, p.Limit, tt.wantPage, tt.wantLimit)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{total: 0, limit: 10, wantPages: 0},
		{total: 15, limit: 10, wantPages: 2},
		{total: 20, limit: 10, wantPages: 2},
		{total: 21, limit: 10, wantPages: 3},
		{total: 5, limit: 0, wantPages: 0},
	}

	for _, tt := range tests {
		meta := NewMeta(1, tt.limit, tt.total)
		if meta.Pages != tt.wantPages {
			t.Errorf("NewMeta(total=%d, limit=%d).Pages = %d, want %d", tt.total, tt.limit, meta.Pages, tt.wantPages)
		}
	}
}

func TestPageRequestValid(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want bool
	}{
		{"zero values", PageRequest{}, true},
		{"bounds", PageRequest{Page: MaxPage, Limit: MaxLimit}, true},
		{"page above max", PageRequest{Page: MaxPage + 1, Limit: 10}, false},
		{"huge page", PageRequest{Page: 1 << 62, Limit: 4}, false},
		{"negative page", PageRequest{Page: -1}, false},
		{"limit above max", PageRequest{Limit: MaxLimit + 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
