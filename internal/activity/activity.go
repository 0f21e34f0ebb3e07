// Package activity unifies the independently stored event logs of the
// platform (security, onboarding, document, access and organization events)
// into one chronologically ordered, filterable and paginated feed.
//
// Each log is exposed through an Adapter. The Aggregator fans a request out to
// the registered adapters, merges their rows by created_at and reconciles the
// per-source counts. A failing adapter only removes its own contribution.
package activity

import (
	"strings"
	"time"
)

// Category identifies which adapter produced an activity.
type Category string

const (
	CategorySecurity     Category = "security"
	CategoryOnboarding   Category = "onboarding"
	CategoryDocument     Category = "document"
	CategoryAccess       Category = "access"
	CategoryOrganization Category = "organization"
)

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	return []Category{
		CategorySecurity,
		CategoryOnboarding,
		CategoryDocument,
		CategoryAccess,
		CategoryOrganization,
	}
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Metadata is the source-defined attribute bag attached to an event. Its
// shape is owned by the adapter that produced it.
type Metadata map[string]any

// UnifiedActivity is the source-agnostic shape every adapter transforms its
// rows into. ID is only unique within SourceTable.
type UnifiedActivity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Category    Category  `json:"category"`
	EventType   string    `json:"event_type"`
	Activity    string    `json:"activity"`
	Metadata    Metadata  `json:"metadata"`
	IPAddress   *string   `json:"ip_address"`
	UserAgent   *string   `json:"user_agent"`
	DeviceInfo  *string   `json:"device_info"`
	CreatedAt   time.Time `json:"created_at"`
	SourceTable string    `json:"source_table"`
}

// Filters narrows an activity query. Zero values mean "no restriction".
// OrganizationID and Portal are scope discriminators that some adapters use
// in place of user scoping.
type Filters struct {
	Search     string
	Categories []Category
	EventTypes []string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int

	OrganizationID string
	Portal         string
}

// ScopeOnly returns a copy of f that keeps the category and scope
// discriminators and drops search, event type and date narrowing. It is the
// filter used to compute the unfiltered total.
func (f Filters) ScopeOnly() Filters {
	return Filters{
		Categories:     f.Categories,
		Limit:          f.Limit,
		Offset:         f.Offset,
		OrganizationID: f.OrganizationID,
		Portal:         f.Portal,
	}
}

// Narrowed reports whether f restricts results beyond categories and scope.
func (f Filters) Narrowed() bool {
	return strings.TrimSpace(f.Search) != "" ||
		len(f.EventTypes) > 0 ||
		f.StartDate != nil ||
		f.EndDate != nil
}

// HasCategory reports whether c is selected by f. An empty selection selects
// every category.
func (f Filters) HasCategory(c Category) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, selected := range f.Categories {
		if selected == c {
			return true
		}
	}
	return false
}

// Result is one aggregated page.
type Result struct {
	Activities      []UnifiedActivity
	Total           int64
	UnfilteredTotal int64
}
