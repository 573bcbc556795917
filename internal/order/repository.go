package order

import (
	"context"
	"sync"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

// MemoryRepository keeps orders in process memory in creation order.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []*Order
	byID   map[string]*Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Order)}
}

func (r *MemoryRepository) Create(ctx context.Context, o *Order) error {
	cp := o.clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, cp)
	r.byID[cp.ID] = cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return o.clone(), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o.clone())
	}
	return out, nil
}
