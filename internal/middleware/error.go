package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "lendhub/internal/errors"
	"lendhub/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts the last error set on
// the Gin context into the JSON error shape used by every handler. Errors
// that are not AppErrors are logged and reported as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			logger.Get().Errorw("unexpected error",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", c.GetString(requestIDKey),
			)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
		}

		c.JSON(appErr.StatusCode, errorBody(appErr))
	}
}

func errorBody(appErr *apperrors.AppError) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
}

// NotFound answers unknown routes with NOT_FOUND in the same error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(apperrors.ErrNotFound.StatusCode, errorBody(apperrors.ErrNotFound))
	}
}
