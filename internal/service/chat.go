package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/chat"
	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

type chatService struct {
	registry  *chat.Registry
	responder chat.Responder
	store     repository.TranscriptStore
	log       zerolog.Logger
}

func NewChatService(registry *chat.Registry, responder chat.Responder, store repository.TranscriptStore, logger zerolog.Logger) ChatService {
	l := logger.With().Str("module", "service").Str("component", "chat").Logger()
	return &chatService{registry: registry, responder: responder, store: store, log: l}
}

func (s *chatService) CreateSession(_ context.Context, report *model.ScoutingReport) (string, error) {
	sess, err := s.registry.Create(report)
	if err != nil {
		s.log.Error().Err(err).Msg("create chat session failed")
		return "", err
	}
	s.log.Info().Str("session_id", sess.ID).Bool("has_report", report != nil).Msg("chat session created")
	return sess.ID, nil
}

// GetSession serves live sessions from the registry and evicted ones from the transcript store.
func (s *chatService) GetSession(ctx context.Context, sessionID string) (SessionView, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return SessionView{}, newInvalidInput([]FieldError{{Field: "session_id", Message: "must not be empty"}})
	}
	if sess, err := s.registry.Get(sessionID); err == nil {
		return SessionView{ID: sess.ID, Live: true, Messages: sess.Transcript()}, nil
	}

	msgs, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("load transcript failed")
		return SessionView{}, err
	}
	if len(msgs) == 0 {
		return SessionView{}, chat.ErrSessionNotFound
	}
	return SessionView{ID: sessionID, Messages: msgs}, nil
}

func (s *chatService) Ask(ctx context.Context, sessionID, question string, report *model.ScoutingReport) (ChatResult, error) {
	start := time.Now()
	question = strings.TrimSpace(question)
	var ferrs []FieldError
	switch n := utf8.RuneCountInString(question); {
	case n == 0:
		ferrs = append(ferrs, FieldError{Field: "question", Message: "must not be empty"})
	case n > maxQuestionRunes:
		ferrs = append(ferrs, FieldError{Field: "question", Message: "length must be at most 2000"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return ChatResult{}, err
	}

	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return ChatResult{}, err
	}
	sess.SetReport(report)

	coach := sess.Append(model.ChatMessage{Role: model.ChatRoleCoach, Content: question})
	s.persist(ctx, coach)

	ans, err := s.responder.Respond(ctx, question, sess.Report())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Str("session_id", sess.ID).Msg("chat responder failed")
		}
		return ChatResult{}, err
	}

	reply := sess.Append(model.ChatMessage{
		Role:     model.ChatRoleAssistant,
		Content:  ans.Text,
		Intent:   string(ans.Intent),
		Provider: ans.Provider,
		Error:    ans.Error,
	})
	s.persist(ctx, reply)

	s.log.Info().
		Dur("took", time.Since(start)).
		Str("session_id", sess.ID).
		Str("provider", ans.Provider).
		Str("intent", string(ans.Intent)).
		Bool("failed", ans.Error != "").
		Msg("chat answered")
	return ChatResult{
		MessageID: reply.Seq,
		Answer:    ans.Text,
		Provider:  ans.Provider,
		Intent:    ans.Intent,
		Error:     ans.Error,
	}, nil
}

// persist keeps the live session authoritative; a store failure only costs history.
func (s *chatService) persist(ctx context.Context, m model.ChatMessage) {
	if err := s.store.AppendMessage(ctx, m); err != nil {
		s.log.Warn().Err(err).Str("session_id", m.SessionID).Int("seq", m.Seq).Msg("transcript append failed")
	}
}
