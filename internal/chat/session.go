package chat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/maxviazov/tactical-scout-service/internal/model"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("chat session not found")

// Session is one coach conversation. It owns its message counter, so ids are
// 1, 2, 3... per session no matter how many sessions run concurrently.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	nextID     int
	report     *model.ScoutingReport
	transcript []model.ChatMessage
	now        func() time.Time
}

// Report returns the report the session is currently grounded on, or nil.
func (s *Session) Report() *model.ScoutingReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// SetReport replaces the report context; nil keeps the current one.
func (s *Session) SetReport(r *model.ScoutingReport) {
	if r == nil {
		return
	}
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}

// Append records msg with the next sequence number and returns the stored copy.
func (s *Session) Append(msg model.ChatMessage) model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	msg.SessionID = s.ID
	msg.Seq = s.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now().UTC()
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

// Transcript returns a copy of the messages in order.
func (s *Session) Transcript() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.transcript...)
}

// Registry holds the most recently used sessions; the least recently used one
// is dropped once the capacity is reached.
type Registry struct {
	cache *lru.Cache[string, *Session]
	newID func() (string, error)
	now   func() time.Time
}

func NewRegistry(size int) (*Registry, error) {
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, fmt.Errorf("chat registry: %w", err)
	}
	return &Registry{cache: cache, newID: func() (string, error) { return gonanoid.New() }, now: time.Now}, nil
}

func (r *Registry) Create(report *model.ScoutingReport) (*Session, error) {
	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	s := &Session{ID: id, CreatedAt: r.now().UTC(), report: report, now: r.now}
	r.cache.Add(id, s)
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Len() int { return r.cache.Len() }
