package services

import (
	"context"
	"time"

	"lendhub/internal/activity"
	"lendhub/internal/pagination"
)

// ActivityQuery holds the raw listing parameters of an activity feed request.
// Categories and EventTypes are validated by the service.
type ActivityQuery struct {
	Page       pagination.PageRequest
	Search     string
	Categories []string
	EventTypes []string
	StartDate  *time.Time
	EndDate    *time.Time

	OrganizationID string
	Portal         string
}

// ActivityPage is one page of the unified feed.
type ActivityPage struct {
	Activities      []activity.UnifiedActivity `json:"activities"`
	Pagination      pagination.Meta            `json:"pagination"`
	UnfilteredTotal int64                      `json:"unfilteredTotal"`
}

// EventTypeInfo describes one filterable event type.
type EventTypeInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// EventTypeGroup lists the event types of one category.
type EventTypeGroup struct {
	Category   activity.Category `json:"category"`
	EventTypes []EventTypeInfo   `json:"event_types"`
}

// ActivityServicer defines the contract for the unified activity feed.
type ActivityServicer interface {
	ListActivities(ctx context.Context, subjectID string, query ActivityQuery) (*ActivityPage, error)
	EventTypes() []EventTypeGroup
}

// OrganizationServicer defines the contract for organization membership checks.
type OrganizationServicer interface {
	RequireMember(ctx context.Context, organizationID, userID string) error
}

// AccessRecord describes a portal or resource access to be logged.
type AccessRecord struct {
	UserID         string
	OrganizationID string
	Portal         string
	Resource       string
	EventType      string
	IPAddress      string
	UserAgent      string
	Metadata       map[string]any
}

// EventRecorder appends rows to the activity source tables. Recording is
// best effort: failures are logged and never returned.
type EventRecorder interface {
	Record(ctx context.Context, event activity.Record)
	RecordAccess(ctx context.Context, access AccessRecord)
}
