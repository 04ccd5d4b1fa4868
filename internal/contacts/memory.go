package contacts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rolodex/internal/domain"
)

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact
	now      func() time.Time
}

// NewMemoryStore creates a new memory-based contact store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contacts: make(map[string]domain.Contact),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) List(ctx context.Context, query *string) ([]domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	all := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		all = append(all, c)
	}
	s.mu.RUnlock()

	return Match(all, query), nil
}

func (s *MemoryStore) CreateEmpty(ctx context.Context) (domain.Contact, error) {
	return s.Add(ctx, domain.Contact{})
}

// Add stores c under a fresh id, keeping every other field
func (s *MemoryStore) Add(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contact{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.contacts[c.ID] = c
	return c, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contact{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return domain.Contact{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, update domain.ContactUpdate) (domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Contact{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return domain.Contact{}, ErrNotFound
	}
	update.Apply(&c)
	s.contacts[id] = c
	return c, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contacts, id)
	return nil
}

// Len returns the number of stored contacts
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}
