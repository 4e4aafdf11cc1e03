// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/tactical-scout-service/internal/backend"
	"github.com/maxviazov/tactical-scout-service/internal/chat"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/service"
)

// StatusClientClosedRequest is reported when the caller went away before we answered.
const StatusClientClosedRequest = 499

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Upstream bodies and transport details never reach the client.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, chat.ErrSessionNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "session_not_found", Message: "chat session does not exist or has expired"}
	case errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict, ErrorPayload{Error: "superseded", Message: "a newer request for this board replaced this one"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, backend.ErrTimeout):
		return http.StatusGatewayTimeout, ErrorPayload{Error: "backend_timeout", Message: "the scouting backend did not answer in time"}
	case errors.Is(err, backend.ErrUpstream), errors.Is(err, backend.ErrUnavailable):
		return http.StatusBadGateway, ErrorPayload{Error: "backend_error", Message: "the scouting backend request failed"}
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "storage_unavailable"}
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorPayload{Error: "canceled"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
