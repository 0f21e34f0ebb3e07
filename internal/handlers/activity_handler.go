package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lendhub/internal/activity/sources"
	apperrors "lendhub/internal/errors"
	"lendhub/internal/pagination"
	"lendhub/internal/services"
	"lendhub/internal/uuid"
)

// ActivityHandler serves the unified activity feed.
type ActivityHandler struct {
	activityService     services.ActivityServicer
	organizationService services.OrganizationServicer
	recorder            services.EventRecorder
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.ActivityServicer, organizationService services.OrganizationServicer, recorder services.EventRecorder) *ActivityHandler {
	return &ActivityHandler{
		activityService:     activityService,
		organizationService: organizationService,
		recorder:            recorder,
	}
}

// ListActivitiesQuery represents the query string of a feed request.
// categories and eventTypes accept comma-separated or repeated values.
type ListActivitiesQuery struct {
	pagination.PageRequest
	Search     string   `form:"search" binding:"omitempty,max=200"`
	Categories []string `form:"categories" binding:"omitempty,dive,activity_categories"`
	EventTypes []string `form:"eventTypes" binding:"omitempty,dive,event_type_codes"`
	StartDate  string   `form:"startDate"`
	EndDate    string   `form:"endDate"`
}

// OrganizationActivitiesQuery adds the portal selector of an organization feed.
type OrganizationActivitiesQuery struct {
	ListActivitiesQuery
	Portal string `form:"portal" binding:"omitempty,portal"`
}

// EventTypesResponse lists the filterable event types per category.
type EventTypesResponse struct {
	Categories []services.EventTypeGroup `json:"categories"`
}

// ListActivities handles the retrieval of the authenticated user's activity feed
// @Summary     List activities
// @Description Get a paginated, newest-first feed merging security, onboarding, document, access and organization events
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1, max 10000)"
// @Param       limit      query int    false "Items per page (default 10, max 100)"
// @Param       search     query string false "Case-insensitive text search"
// @Param       categories query string false "Comma-separated categories (security, onboarding, document, access, organization)"
// @Param       eventTypes query string false "Comma-separated event types, e.g. LOGIN_SUCCESS,PASSWORD_CHANGED"
// @Param       startDate  query string false "Inclusive lower bound (RFC3339 or YYYY-MM-DD)"
// @Param       endDate    query string false "Inclusive upper bound (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.ActivityPage "Activity page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListActivitiesQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}
	if err := rejectExplicitZero(c, "page", "limit"); err != nil {
		respondWithError(c, err)
		return
	}

	query, err := req.toServiceQuery()
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := h.activityService.ListActivities(c.Request.Context(), userID, query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListOrganizationActivities handles the retrieval of an organization's feed
// @Summary     List organization activities
// @Description Get the activity feed of an organization portal; access and organization events cover every member
// @Tags        activities,organizations
// @Produce     json
// @Security    BearerAuth
// @Param       id         path  string true  "Organization ID"
// @Param       portal     query string false "Portal selector (borrower, lender, broker, admin)"
// @Param       page       query int    false "Page number (default 1, max 10000)"
// @Param       limit      query int    false "Items per page (default 10, max 100)"
// @Param       search     query string false "Case-insensitive text search"
// @Param       categories query string false "Comma-separated categories"
// @Param       eventTypes query string false "Comma-separated event types"
// @Param       startDate  query string false "Inclusive lower bound (RFC3339 or YYYY-MM-DD)"
// @Param       endDate    query string false "Inclusive upper bound (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.ActivityPage "Activity page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Organization not found"
// @Router      /organizations/{id}/activities [get]
func (h *ActivityHandler) ListOrganizationActivities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	orgID := c.Param("id")
	if !uuid.IsValid(orgID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "invalid organization id"))
		return
	}

	var req OrganizationActivitiesQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}
	if err := rejectExplicitZero(c, "page", "limit"); err != nil {
		respondWithError(c, err)
		return
	}

	query, err := req.toServiceQuery()
	if err != nil {
		respondWithError(c, err)
		return
	}
	query.OrganizationID = orgID
	query.Portal = req.Portal

	ctx := c.Request.Context()
	if err := h.organizationService.RequireMember(ctx, orgID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotOrganizationMember) {
			h.recorder.RecordAccess(ctx, services.AccessRecord{
				UserID:         userID,
				OrganizationID: orgID,
				Portal:         req.Portal,
				Resource:       c.Request.URL.Path,
				EventType:      sources.AccessDenied,
				IPAddress:      c.ClientIP(),
				UserAgent:      c.Request.UserAgent(),
			})
		}
		respondWithError(c, err)
		return
	}

	page, err := h.activityService.ListActivities(ctx, userID, query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListEventTypes handles the retrieval of the event type catalogue
// @Summary     List event types
// @Description Get the filterable event types of every category with their default labels
// @Tags        activities
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} EventTypesResponse "Event types by category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /activities/event-types [get]
func (h *ActivityHandler) ListEventTypes(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EventTypesResponse{Categories: h.activityService.EventTypes()})
}

func (q ListActivitiesQuery) toServiceQuery() (services.ActivityQuery, error) {
	query := services.ActivityQuery{
		Page:       q.PageRequest,
		Search:     q.Search,
		Categories: splitList(q.Categories),
		EventTypes: splitList(q.EventTypes),
	}

	if v := strings.TrimSpace(q.StartDate); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return query, apperrors.WithMessage(apperrors.ErrValidation, "invalid startDate format, use RFC3339 or YYYY-MM-DD")
		}
		query.StartDate = &t
	}

	if v := strings.TrimSpace(q.EndDate); v != "" {
		t, err := parseRangeEnd(v)
		if err != nil {
			return query, apperrors.WithMessage(apperrors.ErrValidation, "invalid endDate format, use RFC3339 or YYYY-MM-DD")
		}
		query.EndDate = &t
	}

	return query, nil
}

// splitList flattens repeated and comma-separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}
