// Package middleware provides the gin middleware shared by every route.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog_backend/internal/shared/apperr"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error to its HTTP status and user-visible message.
func StatusFor(err error) (int, string) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, apperr.ErrMalformedID):
		return http.StatusBadRequest, apperr.ErrMalformedID.Error()
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusBadRequest, apperr.ErrForbidden.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, apperr.ErrNotFound.Error()
	case errors.Is(err, apperr.ErrTokenExpired):
		return http.StatusUnauthorized, apperr.ErrTokenExpired.Error()
	case errors.Is(err, apperr.ErrTokenMissingOrInvalid):
		return http.StatusUnauthorized, apperr.ErrTokenMissingOrInvalid.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ErrorHandler translates the last error recorded with c.Error into {"error": "..."}.
// Unclassified errors become 500 and are logged; nothing is swallowed.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := StatusFor(err)
		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"request_id": c.GetString(ContextRequestID),
		}).WithError(err)
		if status == http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}
		c.JSON(status, ErrorResponse{Error: msg})
	}
}

// UnknownEndpoint answers routes that match nothing.
func UnknownEndpoint(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown endpoint"})
}
