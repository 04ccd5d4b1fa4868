package contacts

import (
	"context"

	"rolodex/internal/domain"
	"rolodex/internal/eventbus"
)

// NotifyingStore publishes a domain event after every successful write to the wrapped store
type NotifyingStore struct {
	Store
	bus eventbus.EventBus
}

// WithEvents wraps store so writes are announced on bus
func WithEvents(store Store, bus eventbus.EventBus) *NotifyingStore {
	return &NotifyingStore{Store: store, bus: bus}
}

func (s *NotifyingStore) CreateEmpty(ctx context.Context) (domain.Contact, error) {
	c, err := s.Store.CreateEmpty(ctx)
	if err != nil {
		s.bus.Publish(eventbus.ErrorEvent{Message: "create contact failed", Err: err})
		return c, err
	}
	s.bus.Publish(eventbus.ContactCreatedEvent{Contact: c})
	return c, nil
}

func (s *NotifyingStore) Update(ctx context.Context, id string, update domain.ContactUpdate) (domain.Contact, error) {
	c, err := s.Store.Update(ctx, id, update)
	if err != nil {
		return c, err
	}
	s.bus.Publish(eventbus.ContactUpdatedEvent{Contact: c})
	return c, nil
}

func (s *NotifyingStore) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(eventbus.ContactDeletedEvent{ID: id})
	return nil
}
