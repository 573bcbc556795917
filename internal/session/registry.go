package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
	"github.com/Abhinay142/mom-made-goodies-house/internal/checkout"
)

// Session is what one browser session owns: its cart and its checkout view.
type Session struct {
	ID       string
	Cart     *cart.Cart
	Checkout *checkout.View

	lastSeen time.Time
}

// Registry hands out sessions by id. Only Get creates one; idle sessions are swept.
type Registry struct {
	deps checkout.Deps
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(deps checkout.Deps) *Registry {
	return &Registry{
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = r.newSession(id)
		r.sessions[id] = s
	}
	s.lastSeen = r.now()
	return s
}

// Peek returns the stored session, or a detached empty one that is not kept.
func (r *Registry) Peek(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return s
	}
	return r.newSession(id)
}

func (r *Registry) newSession(id string) *Session {
	return &Session{ID: id, Cart: cart.New(), Checkout: checkout.NewView(r.deps)}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions not touched within idle and returns how many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration, logger logrus.FieldLogger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				logger.WithFields(logrus.Fields{"removed": n, "remaining": r.Len()}).Debug("idle sessions swept")
			}
		}
	}
}
