// Package latest keeps only the newest in-flight operation per key.
//
// A board (one coach screen) that asks for a new report while an older fetch
// is still running gets a fresh ticket; the older fetch is canceled and, should
// it finish anyway, its ticket no longer matches and the result is dropped.
package latest

import (
	"context"
	"sync"
)

// Ticket identifies one generation of work for a key.
type Ticket struct {
	Key string
	Gen uint64
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Tracker hands out tickets. The zero value is not usable; call NewTracker.
type Tracker struct {
	mu    sync.Mutex
	next  uint64 // shared across keys so a dropped slot never reissues a generation
	slots map[string]*slot
}

func NewTracker() *Tracker {
	return &Tracker{slots: make(map[string]*slot)}
}

// Begin starts a new generation for key, canceling the previous one.
// The returned context is canceled when a newer generation begins or Finish is called.
func (t *Tracker) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[key]
	if !ok {
		s = &slot{}
		t.slots[key] = s
	}
	if s.cancel != nil {
		s.cancel()
	}
	t.next++
	s.gen = t.next
	s.cancel = cancel
	return ctx, Ticket{Key: key, Gen: s.gen}
}

// IsCurrent reports whether tk is still the newest generation for its key.
func (t *Tracker) IsCurrent(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[tk.Key]
	return ok && s.gen == tk.Gen
}

// Finish releases tk's context. It returns true when tk was still current,
// in which case the key's slot is dropped.
func (t *Tracker) Finish(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[tk.Key]
	if !ok || s.gen != tk.Gen {
		return false
	}
	s.cancel()
	delete(t.slots, tk.Key)
	return true
}

// Len returns the number of keys with work in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
