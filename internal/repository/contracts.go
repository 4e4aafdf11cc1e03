package repository

import (
	"context"

	"github.com/maxviazov/tactical-scout-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for stores that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ReportStore keeps an append-only log of scouting results per team.
// Team names are matched case-insensitively after trimming.
type ReportStore interface {
	// AppendReport stores s and returns it with ID and CreatedAt filled in.
	AppendReport(ctx context.Context, s model.ReportSnapshot) (model.ReportSnapshot, error)
	// ListReports returns snapshots for team, newest first.
	ListReports(ctx context.Context, team string, p Page) (PageResult[model.ReportSnapshot], error)
}

// TranscriptStore keeps chat transcripts. Messages are never rewritten.
type TranscriptStore interface {
	AppendMessage(ctx context.Context, m model.ChatMessage) error
	// ListMessages returns a session's messages in sequence order; unknown sessions yield none.
	ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
}

// HistoryStore is everything the service persists.
type HistoryStore interface {
	ReportStore
	TranscriptStore
	Pinger
	Close() error
}
