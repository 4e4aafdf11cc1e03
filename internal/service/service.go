// Package service coordinates the scouting backend, the chat engines and history storage.
// Handlers talk only to the interfaces declared here.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/tactical-scout-service/internal/intent"
	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrSuperseded means a newer fetch for the same board started before this one finished.
var ErrSuperseded = errors.New("request superseded by a newer one")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput returns nil when fe is empty.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ScoutingResult is a mapped report with its derived views.
type ScoutingResult struct {
	Report     model.ScoutingReport `json:"report"`
	Confidence *model.Confidence    `json:"confidence"`
	Insight    *model.Insight       `json:"insight"`
}

// ScoutingService defines scouting report use cases.
type ScoutingService interface {
	// FetchReport asks the backend for a fresh report. boardID scopes request supersession;
	// an empty boardID shares the default board.
	FetchReport(ctx context.Context, boardID, teamName string, matchLimit int) (ScoutingResult, error)
	ListReports(ctx context.Context, teamName string, page repository.Page) (repository.PageResult[model.ReportSnapshot], error)
	// Analyze derives confidence and insight for a report the caller already holds.
	Analyze(report *model.ScoutingReport) (*model.Confidence, *model.Insight)
}

// DraftService defines draft analysis use cases.
type DraftService interface {
	// AnalyzeDraft uses picks when given, otherwise splits text into champion names.
	AnalyzeDraft(ctx context.Context, text string, picks []string) (*model.DraftAnalysis, error)
}

// SessionView is a chat session with its transcript.
type SessionView struct {
	ID       string              `json:"session_id"`
	Live     bool                `json:"live"`
	Messages []model.ChatMessage `json:"messages"`
}

// ChatResult is the reply to one coach question.
type ChatResult struct {
	MessageID int       `json:"message_id"`
	Answer    string    `json:"answer"`
	Provider  string    `json:"provider"`
	Intent    intent.ID `json:"intent,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ChatService defines coach chat use cases.
type ChatService interface {
	CreateSession(ctx context.Context, report *model.ScoutingReport) (string, error)
	GetSession(ctx context.Context, sessionID string) (SessionView, error)
	// Ask answers question in the session; a non-nil report replaces the session's report first.
	Ask(ctx context.Context, sessionID, question string, report *model.ScoutingReport) (ChatResult, error)
}
