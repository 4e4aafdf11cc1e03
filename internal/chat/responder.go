// Package chat answers coach questions about a scouting report and keeps the
// per-session transcript. Which engine answers is a Responder chosen by config.
package chat

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/backend"
	"github.com/maxviazov/tactical-scout-service/internal/intent"
	"github.com/maxviazov/tactical-scout-service/internal/model"
)

const (
	ProviderLocal   = "local"
	ProviderBackend = "backend"
	ProviderGemini  = "gemini"
)

// Answer is one assistant reply. Error is set when the engine failed; Text may then be empty.
type Answer struct {
	Text     string
	Provider string
	Intent   intent.ID
	Error    string
}

// Responder produces an answer for question in the context of report (which may be nil).
// An error is returned only when ctx ends; engine failures are reported in Answer.Error.
type Responder interface {
	Respond(ctx context.Context, question string, report *model.ScoutingReport) (Answer, error)
}

// LocalResponder answers from the intent table without any network call.
type LocalResponder struct{}

func (LocalResponder) Respond(_ context.Context, question string, report *model.ScoutingReport) (Answer, error) {
	id, ok := intent.Match(question)
	if !ok {
		return Answer{Text: intent.Suggestion(), Provider: ProviderLocal}, nil
	}
	return Answer{Text: intent.PredefinedResponse(id, report), Provider: ProviderLocal, Intent: id}, nil
}

// CoachClient is the slice of the backend client the remote responder needs.
type CoachClient interface {
	CoachChat(ctx context.Context, question string, report *model.ScoutingReport) (*model.ChatReply, error)
}

// RemoteResponder forwards questions to the scouting backend's chat engine.
type RemoteResponder struct {
	client CoachClient
	log    zerolog.Logger
}

func NewRemoteResponder(client CoachClient, logger zerolog.Logger) *RemoteResponder {
	return &RemoteResponder{
		client: client,
		log:    logger.With().Str("module", "chat").Str("component", "remote").Logger(),
	}
}

func (r *RemoteResponder) Respond(ctx context.Context, question string, report *model.ScoutingReport) (Answer, error) {
	reply, err := r.client.CoachChat(ctx, question, report)
	if err != nil {
		if ctx.Err() != nil {
			return Answer{}, ctx.Err()
		}
		r.log.Warn().Err(err).Msg("coach chat failed")
		return Answer{Provider: ProviderBackend, Error: failureMessage(err)}, nil
	}

	a := Answer{Text: reply.Response, Provider: reply.Provider}
	if a.Provider == "" {
		a.Provider = ProviderBackend
	}
	if reply.Error != nil {
		a.Error = *reply.Error
	}
	return a, nil
}

const timeoutMessage = "The coach assistant took too long to answer. Please try again."

func failureMessage(err error) string {
	switch {
	case errors.Is(err, backend.ErrTimeout):
		return timeoutMessage
	case errors.Is(err, backend.ErrUnavailable):
		return "The coach assistant is unreachable right now."
	}
	return "The coach assistant could not answer this question."
}

// HybridResponder answers recognized intents locally and sends everything else to fallback.
type HybridResponder struct {
	local    Responder
	fallback Responder
}

func NewHybridResponder(fallback Responder) *HybridResponder {
	return &HybridResponder{local: LocalResponder{}, fallback: fallback}
}

func (h *HybridResponder) Respond(ctx context.Context, question string, report *model.ScoutingReport) (Answer, error) {
	if _, ok := intent.Match(question); ok {
		return h.local.Respond(ctx, question, report)
	}
	return h.fallback.Respond(ctx, question, report)
}
