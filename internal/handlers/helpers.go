package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lendhub/internal/errors"
	"lendhub/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	v, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// rejectExplicitZero fails when any of params is present with a zero value.
// Binding cannot tell "limit=0" from an absent limit, and only the latter
// falls back to the default.
func rejectExplicitZero(c *gin.Context, params ...string) error {
	for _, name := range params {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		if strings.TrimLeft(raw, "+-0") == "" {
			return apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("%s must be at least 1", name))
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// parseFlexibleTime accepts RFC3339 timestamps or YYYY-MM-DD dates.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, s)
}

// parseRangeEnd is parseFlexibleTime for the upper bound of a range: a bare
// date includes the whole day.
func parseRangeEnd(s string) (time.Time, error) {
	t, err := parseFlexibleTime(s)
	if err != nil {
		return t, err
	}
	if len(s) == len(dateLayout) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
