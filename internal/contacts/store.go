// Package contacts is the data collaborator behind the routes: it owns contact
// storage, identity and the match semantics used to filter the sidebar list.
package contacts

import (
	"context"
	"errors"

	"rolodex/internal/domain"
)

// ErrNotFound is returned when no contact has the requested id
var ErrNotFound = errors.New("contact not found")

// Store provides access to contact data
type Store interface {
	// List returns the contacts matching query, best match first.
	// A nil or empty query returns every contact.
	List(ctx context.Context, query *string) ([]domain.Contact, error)
	// CreateEmpty stores a contact with no fields set and a fresh id.
	CreateEmpty(ctx context.Context) (domain.Contact, error)
	Get(ctx context.Context, id string) (domain.Contact, error)
	Update(ctx context.Context, id string, update domain.ContactUpdate) (domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
