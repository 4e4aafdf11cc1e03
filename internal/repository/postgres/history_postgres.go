package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

type historyStore struct {
	pool *pgxpool.Pool
	tx   repository.TxManager
}

// NewHistoryStore wraps an open pool. Close releases the pool.
func NewHistoryStore(pool *pgxpool.Pool) repository.HistoryStore {
	return &historyStore{pool: pool, tx: NewTxManager(pool)}
}

func (s *historyStore) AppendReport(ctx context.Context, snap model.ReportSnapshot) (model.ReportSnapshot, error) {
	if err := ensurePool(s.pool); err != nil {
		return model.ReportSnapshot{}, err
	}
	exec := getQ(ctx, s.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO report_snapshots (team_key, team_name, report, confidence)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		repository.TeamKey(snap.TeamName), snap.TeamName, snap.Report, snap.Confidence,
	)
	if err := row.Scan(&snap.ID, &snap.CreatedAt); err != nil {
		return model.ReportSnapshot{}, repository.MapPgError(err)
	}
	return snap, nil
}

func (s *historyStore) ListReports(ctx context.Context, team string, p repository.Page) (repository.PageResult[model.ReportSnapshot], error) {
	if err := ensurePool(s.pool); err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, err
	}
	p = p.Normalize()
	exec := getQ(ctx, s.pool)

	res := repository.PageResult[model.ReportSnapshot]{Items: make([]model.ReportSnapshot, 0, p.Limit)}
	key := repository.TeamKey(team)
	if err := exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM report_snapshots WHERE team_key = $1`, key,
	).Scan(&res.Total); err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, repository.MapPgError(err)
	}

	rows, err := exec.Query(ctx,
		`SELECT id, team_name, report, confidence, created_at
		 FROM report_snapshots
		 WHERE team_key = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		key, p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var snap model.ReportSnapshot
		if err := rows.Scan(&snap.ID, &snap.TeamName, &snap.Report, &snap.Confidence, &snap.CreatedAt); err != nil {
			return repository.PageResult[model.ReportSnapshot]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, snap)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, repository.MapPgError(err)
	}
	return res, nil
}

// AppendMessage registers the session on first use and inserts the message in one transaction.
func (s *historyStore) AppendMessage(ctx context.Context, m model.ChatMessage) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exec := getQ(ctx, s.pool)
		if _, err := exec.Exec(ctx,
			`INSERT INTO chat_sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, m.SessionID,
		); err != nil {
			return err
		}
		_, err := exec.Exec(ctx,
			`INSERT INTO chat_messages (session_id, seq, role, content, intent, provider, error, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.SessionID, m.Seq, string(m.Role), m.Content, m.Intent, m.Provider, m.Error, m.CreatedAt,
		)
		return err
	})
}

func (s *historyStore) ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	if err := ensurePool(s.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, s.pool).Query(ctx,
		`SELECT session_id, seq, role, content, intent, provider, error, created_at
		 FROM chat_messages
		 WHERE session_id = $1
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := []model.ChatMessage{}
	for rows.Next() {
		var (
			m    model.ChatMessage
			role string
		)
		if err := rows.Scan(&m.SessionID, &m.Seq, &role, &m.Content, &m.Intent, &m.Provider, &m.Error, &m.CreatedAt); err != nil {
			return nil, repository.MapPgError(err)
		}
		m.Role = model.ChatRole(role)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (s *historyStore) Ping(ctx context.Context) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}

func (s *historyStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
