package repository

import (
	"context"
	"sync"

	"github.com/candies-app/candies/internal/candy"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used by unit tests and as the
// fallback store when MongoDB is not configured or not reachable.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	store map[primitive.ObjectID]candy.Candy
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]candy.Candy)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]*candy.Candy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*candy.Candy, 0, len(m.order))
	for _, id := range m.order {
		c := m.store[id]
		out = append(out, &c)
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*candy.Candy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *MemoryRepo) Create(ctx context.Context, c *candy.Candy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.store[c.ID] = *c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p candy.Patch) (*candy.Candy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[oid]
	if !ok {
		return nil, ErrNotFound
	}
	p.Apply(&c)
	m.store[oid] = c
	return &c, nil
}

// Delete removes the record if present. Missing ids are not an error.
func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[oid]; !ok {
		return nil
	}
	delete(m.store, oid)
	for i, v := range m.order {
		if v == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
