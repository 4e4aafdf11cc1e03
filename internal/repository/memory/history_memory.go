// Package memory is the in-process HistoryStore. History is lost on restart.
//
// The store is bounded: each team keeps its newest snapshots up to a cap, and
// teams and chat transcripts are evicted least recently used first.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
)

const (
	DefaultReportsPerTeam = 200
	DefaultTeams          = 1024
	DefaultSessions       = 4096
)

type options struct {
	reportsPerTeam int
	teams          int
	sessions       int
	now            func() time.Time
}

type Option func(*options)

// WithReportsPerTeam caps the snapshots kept per team; the oldest are dropped first.
func WithReportsPerTeam(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.reportsPerTeam = n
		}
	}
}

func WithTeams(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.teams = n
		}
	}
}

// WithSessions caps the number of chat transcripts kept.
func WithSessions(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sessions = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

type historyStore struct {
	mu             sync.RWMutex
	nextID         int64
	reportsPerTeam int
	reports        *lru.Cache[string, []model.ReportSnapshot] // by team key, oldest first
	messages       *lru.Cache[string, []model.ChatMessage]
	now            func() time.Time
}

func NewHistoryStore(opts ...Option) repository.HistoryStore {
	o := options{
		reportsPerTeam: DefaultReportsPerTeam,
		teams:          DefaultTeams,
		sessions:       DefaultSessions,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	// sizes are positive, so New cannot fail
	reports, _ := lru.New[string, []model.ReportSnapshot](o.teams)
	messages, _ := lru.New[string, []model.ChatMessage](o.sessions)
	return &historyStore{
		reportsPerTeam: o.reportsPerTeam,
		reports:        reports,
		messages:       messages,
		now:            o.now,
	}
}

func (s *historyStore) AppendReport(_ context.Context, snap model.ReportSnapshot) (model.ReportSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	snap.ID = s.nextID
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = s.now().UTC()
	}
	key := repository.TeamKey(snap.TeamName)
	all, _ := s.reports.Get(key)
	all = append(all, snap)
	if over := len(all) - s.reportsPerTeam; over > 0 {
		all = append([]model.ReportSnapshot(nil), all[over:]...)
	}
	s.reports.Add(key, all)
	return snap, nil
}

func (s *historyStore) ListReports(_ context.Context, team string, p repository.Page) (repository.PageResult[model.ReportSnapshot], error) {
	p = p.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, _ := s.reports.Get(repository.TeamKey(team))
	res := repository.PageResult[model.ReportSnapshot]{Items: []model.ReportSnapshot{}, Total: len(all)}
	// newest first without copying the whole slice
	for i := len(all) - 1 - p.Offset; i >= 0 && len(res.Items) < p.Limit; i-- {
		res.Items = append(res.Items, all[i])
	}
	return res, nil
}

func (s *historyStore) AppendMessage(_ context.Context, m model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, _ := s.messages.Get(m.SessionID)
	for _, existing := range msgs {
		if existing.Seq == m.Seq {
			return repository.ErrAlreadyExists
		}
	}
	s.messages.Add(m.SessionID, append(msgs, m))
	return nil
}

func (s *historyStore) ListMessages(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	msgs, _ := s.messages.Get(sessionID)
	out := append([]model.ChatMessage{}, msgs...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (s *historyStore) Ping(context.Context) error { return nil }

func (s *historyStore) Close() error { return nil }
