package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/tactical-scout-service/internal/backend"
	"github.com/maxviazov/tactical-scout-service/internal/chat"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/service"
	"github.com/maxviazov/tactical-scout-service/pkg/response"
)

// fakeInvalid mimics the aggregated validation error without reaching into service internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "team_name", Message: "bad"}}}, 400, "invalid_input"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"session_not_found", chat.ErrSessionNotFound, 404, "session_not_found"},
		{"superseded", service.ErrSuperseded, 409, "superseded"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"backend_timeout", fmt.Errorf("report: %w", backend.ErrTimeout), 504, "backend_timeout"},
		{"backend_status", &backend.StatusError{Path: backend.PathScoutingReport, Status: 500}, 502, "backend_error"},
		{"backend_down", backend.ErrUnavailable, 502, "backend_error"},
		{"storage_down", repository.ErrUnavailable, 503, "storage_unavailable"},
		{"canceled", context.Canceled, 499, "canceled"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestMapError_DoesNotLeakDetails(t *testing.T) {
	_, payload := response.MapError(fmt.Errorf("%w: secret body from upstream", backend.ErrUpstream))
	assert.NotContains(t, payload.Message, "secret")
}

func TestWriteError_Aborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.WriteError(c, service.ErrSuperseded)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	var body response.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "superseded", body.Error)
}
