package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/tactical-scout-service/internal/chat"
	"github.com/maxviazov/tactical-scout-service/internal/intent"
	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/repository/memory"
	"github.com/maxviazov/tactical-scout-service/internal/service"
)

// recordingResponder echoes the question and remembers the report it saw.
type recordingResponder struct {
	seen *model.ScoutingReport
	err  error
	ans  chat.Answer
}

func (r *recordingResponder) Respond(_ context.Context, q string, report *model.ScoutingReport) (chat.Answer, error) {
	r.seen = report
	if r.err != nil {
		return chat.Answer{}, r.err
	}
	if r.ans.Text != "" || r.ans.Error != "" {
		return r.ans, nil
	}
	return chat.Answer{Text: "echo: " + q, Provider: "test"}, nil
}

func newChat(t *testing.T, size int, resp chat.Responder, store repository.TranscriptStore) service.ChatService {
	t.Helper()
	reg, err := chat.NewRegistry(size)
	require.NoError(t, err)
	return service.NewChatService(reg, resp, store, zerolog.New(io.Discard))
}

func TestChatService_AskAppendsBothSides(t *testing.T) {
	store := memory.NewHistoryStore()
	svc := newChat(t, 8, &recordingResponder{}, store)
	ctx := context.Background()

	id, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	res, err := svc.Ask(ctx, id, "  what should we do? ", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MessageID)
	assert.Equal(t, "echo: what should we do?", res.Answer)
	assert.Equal(t, "test", res.Provider)

	res, err = svc.Ask(ctx, id, "and then?", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.MessageID)

	view, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.Live)
	require.Len(t, view.Messages, 4)
	assert.Equal(t, model.ChatRoleCoach, view.Messages[0].Role)
	assert.Equal(t, model.ChatRoleAssistant, view.Messages[1].Role)

	stored, err := store.ListMessages(ctx, id)
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestChatService_SessionsCountIndependently(t *testing.T) {
	svc := newChat(t, 8, &recordingResponder{}, memory.NewHistoryStore())
	ctx := context.Background()

	a, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)
	b, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.Ask(ctx, a, "ping", nil)
		require.NoError(t, err)
	}
	res, err := svc.Ask(ctx, b, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MessageID)
}

func TestChatService_ReportContext(t *testing.T) {
	resp := &recordingResponder{}
	svc := newChat(t, 8, resp, memory.NewHistoryStore())
	ctx := context.Background()

	first := &model.ScoutingReport{TeamName: "T1"}
	id, err := svc.CreateSession(ctx, first)
	require.NoError(t, err)

	_, err = svc.Ask(ctx, id, "q", nil)
	require.NoError(t, err)
	assert.Same(t, first, resp.seen)

	second := &model.ScoutingReport{TeamName: "Gen.G"}
	_, err = svc.Ask(ctx, id, "q", second)
	require.NoError(t, err)
	assert.Same(t, second, resp.seen)

	_, err = svc.Ask(ctx, id, "q", nil)
	require.NoError(t, err)
	assert.Same(t, second, resp.seen, "a nil report keeps the current one")
}

func TestChatService_Validation(t *testing.T) {
	svc := newChat(t, 8, &recordingResponder{}, memory.NewHistoryStore())
	id, err := svc.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), id, "   ", nil)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "question", service.FieldErrors(err)[0].Field)
}

func TestChatService_UnknownSession(t *testing.T) {
	svc := newChat(t, 8, &recordingResponder{}, memory.NewHistoryStore())

	_, err := svc.Ask(context.Background(), "nope", "hi", nil)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)

	_, err = svc.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestChatService_EvictedSessionServedFromStore(t *testing.T) {
	store := memory.NewHistoryStore()
	svc := newChat(t, 1, &recordingResponder{}, store)
	ctx := context.Background()

	old, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)
	_, err = svc.Ask(ctx, old, "remember me", nil)
	require.NoError(t, err)

	_, err = svc.CreateSession(ctx, nil) // evicts old
	require.NoError(t, err)

	view, err := svc.GetSession(ctx, old)
	require.NoError(t, err)
	assert.False(t, view.Live)
	require.Len(t, view.Messages, 2)
	assert.Equal(t, "remember me", view.Messages[0].Content)

	_, err = svc.Ask(ctx, old, "still there?", nil)
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestChatService_ResponderCancellation(t *testing.T) {
	svc := newChat(t, 8, &recordingResponder{err: context.Canceled}, memory.NewHistoryStore())
	ctx := context.Background()
	id, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Ask(ctx, id, "hello", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChatService_EngineErrorIsInReply(t *testing.T) {
	resp := &recordingResponder{ans: chat.Answer{Provider: chat.ProviderBackend, Error: "unreachable"}}
	svc := newChat(t, 8, resp, memory.NewHistoryStore())
	ctx := context.Background()
	id, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)

	res, err := svc.Ask(ctx, id, "something odd", nil)
	require.NoError(t, err)
	assert.Equal(t, "unreachable", res.Error)

	view, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "unreachable", view.Messages[1].Error)
}

func TestChatService_LocalIntent(t *testing.T) {
	svc := newChat(t, 8, chat.LocalResponder{}, memory.NewHistoryStore())
	ctx := context.Background()
	id, err := svc.CreateSession(ctx, nil)
	require.NoError(t, err)

	res, err := svc.Ask(ctx, id, "What should we BAN?", nil)
	require.NoError(t, err)
	assert.Equal(t, intent.BestBanStrategy, res.Intent)
	assert.Equal(t, chat.ProviderLocal, res.Provider)
	assert.Contains(t, res.Answer, "best ban strategy")
}
