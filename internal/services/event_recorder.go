package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lendhub/internal/activity"
	"lendhub/internal/logger"
	"lendhub/internal/models"
)

// eventRecorder appends rows to the activity source tables.
type eventRecorder struct {
	db *gorm.DB
}

// NewEventRecorder creates a new EventRecorder.
func NewEventRecorder(db *gorm.DB) EventRecorder {
	return &eventRecorder{db: db}
}

// Record inserts event, which must be a pointer to one of the source models.
// Errors are logged but never propagate to avoid disrupting the main
// operation.
func (r *eventRecorder) Record(ctx context.Context, event activity.Record) {
	switch event.(type) {
	case *models.SecurityEvent, *models.OnboardingEvent, *models.DocumentEvent,
		*models.AccessEvent, *models.OrganizationEvent:
	default:
		logger.Get().Errorw("unsupported activity event record", "type", fmt.Sprintf("%T", event))
		return
	}

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		logger.Get().Errorw("failed to record activity event",
			"error", err,
			"source_table", event.TableName(),
		)
	}
}

// RecordAccess logs a portal or resource access.
func (r *eventRecorder) RecordAccess(ctx context.Context, access AccessRecord) {
	ev := &models.AccessEvent{
		UserID:    access.UserID,
		Portal:    access.Portal,
		Resource:  access.Resource,
		EventType: strings.ToUpper(access.EventType),
		IPAddress: optional(access.IPAddress),
		UserAgent: optional(access.UserAgent),
		Metadata:  datatypes.JSONMap(access.Metadata),
	}
	if access.OrganizationID != "" {
		orgID := access.OrganizationID
		ev.OrganizationID = &orgID
	}
	if ev.Metadata == nil {
		ev.Metadata = datatypes.JSONMap{}
	}
	r.Record(ctx, ev)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
