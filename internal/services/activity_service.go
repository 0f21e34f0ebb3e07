package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lendhub/internal/activity"
	apperrors "lendhub/internal/errors"
	"lendhub/internal/logger"
	"lendhub/internal/metrics"
	"lendhub/internal/pagination"
)

// activityService serves the unified activity feed.
type activityService struct {
	aggregator *activity.Aggregator
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(aggregator *activity.Aggregator) ActivityServicer {
	return &activityService{aggregator: aggregator}
}

// ListActivities validates query and returns the requested page of the feed
// for subjectID. When the aggregation as a whole fails the caller still gets
// a well-formed empty page; only invalid input is reported as an error.
func (s *activityService) ListActivities(ctx context.Context, subjectID string, query ActivityQuery) (*ActivityPage, error) {
	if !query.Page.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("page must be between 1 and %d and limit between 1 and %d", pagination.MaxPage, pagination.MaxLimit))
	}

	filters, err := s.filters(query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	page.Defaults()
	filters.Limit = page.Limit
	filters.Offset = page.Offset()

	result, err := s.aggregate(ctx, subjectID, filters)
	if err != nil {
		logger.Get().Errorw("activity aggregation failed, serving empty page",
			"error", err,
			"subject_id", subjectID,
			"organization_id", filters.OrganizationID,
		)
		metrics.IncFeedRequest(true)
		return &ActivityPage{
			Activities: []activity.UnifiedActivity{},
			Pagination: pagination.NewMeta(page.Page, page.Limit, 0),
		}, nil
	}

	metrics.IncFeedRequest(false)
	return &ActivityPage{
		Activities:      result.Activities,
		Pagination:      pagination.NewMeta(page.Page, page.Limit, result.Total),
		UnfilteredTotal: result.UnfilteredTotal,
	}, nil
}

// aggregate shields the caller from panics escaping the aggregator.
func (s *activityService) aggregate(ctx context.Context, subjectID string, f activity.Filters) (result *activity.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("activity aggregation panicked: %v", r)
		}
	}()
	return s.aggregator.Aggregate(ctx, subjectID, f)
}

func (s *activityService) filters(query ActivityQuery) (activity.Filters, error) {
	f := activity.Filters{
		Search:         strings.TrimSpace(query.Search),
		StartDate:      query.StartDate,
		EndDate:        query.EndDate,
		OrganizationID: query.OrganizationID,
		Portal:         query.Portal,
	}

	for _, raw := range query.Categories {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		c, ok := activity.ParseCategory(raw)
		if !ok {
			return f, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unknown category %q", raw))
		}
		if !slices.Contains(f.Categories, c) {
			f.Categories = append(f.Categories, c)
		}
	}

	registry := s.aggregator.Registry()
	for _, raw := range query.EventTypes {
		et := strings.ToUpper(strings.TrimSpace(raw))
		if et == "" {
			continue
		}
		if !registry.KnownEventType(et) {
			return f, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("unknown event type %q", raw))
		}
		f.EventTypes = append(f.EventTypes, et)
	}

	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return f, apperrors.WithMessage(apperrors.ErrValidation, "startDate must not be after endDate")
	}
	return f, nil
}

// EventTypes lists every registered category with its event types and their
// default labels.
func (s *activityService) EventTypes() []EventTypeGroup {
	adapters := s.aggregator.Registry().Adapters()
	groups := make([]EventTypeGroup, 0, len(adapters))
	for _, a := range adapters {
		types := a.EventTypes()
		infos := make([]EventTypeInfo, len(types))
		for i, et := range types {
			infos[i] = EventTypeInfo{Code: et, Label: a.Describe(et, nil)}
		}
		groups = append(groups, EventTypeGroup{Category: a.Category(), EventTypes: infos})
	}
	return groups
}
