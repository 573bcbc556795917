package profile

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var ErrMissingPhone = errors.New("profile phone is required")

// Store persists profiles keyed by verified phone number.
// Get returns nil, nil when nothing is stored for the phone.
type Store interface {
	Get(ctx context.Context, phone string) (*UserProfile, error)
	Save(ctx context.Context, p UserProfile) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]UserProfile)}
}

func (s *MemoryStore) Get(ctx context.Context, phone string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[phone]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryStore) Save(ctx context.Context, p UserProfile) error {
	if p.Phone == "" {
		return ErrMissingPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Phone] = p
	return nil
}
