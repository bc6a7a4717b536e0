package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	estimatedomain "github.com/markahope-aag/hazardos-sub007/internal/estimate/domain"
	ratetabledomain "github.com/markahope-aag/hazardos-sub007/internal/ratetable/domain"
	surveydomain "github.com/markahope-aag/hazardos-sub007/internal/survey/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "validation error",
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, surveydomain.ErrNotFound),
		errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, surveydomain.ErrInvalidOrganization),
		errors.Is(err, surveydomain.ErrInvalidHazardType),
		errors.Is(err, surveydomain.ErrInvalidContainmentLevel),
		errors.Is(err, surveydomain.ErrInvalidID),
		errors.Is(err, ratetabledomain.ErrInvalidOrganization),
		errors.Is(err, estimatedomain.ErrSurveyRequired),
		errors.Is(err, estimatedomain.ErrMissingHazardType),
		errors.Is(err, estimatedomain.ErrInvalidHazardType),
		errors.Is(err, estimatedomain.ErrInvalidContainmentLevel):
		return true
	default:
		return false
	}
}
