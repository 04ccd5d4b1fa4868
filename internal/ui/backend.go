package ui

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
	"rolodex/internal/routes"
)

// Backend is the loader and action pair the browser drives
type Backend interface {
	Load(ctx context.Context, u *url.URL) (routes.RootData, error)
	Act(ctx context.Context) (routes.Redirect, error)
	Contact(ctx context.Context, id string) (domain.Contact, error)
}

// LocalBackend runs the routes in-process against a store
type LocalBackend struct {
	root     *routes.Root
	contacts *routes.Contacts
}

// NewLocalBackend creates a backend over store
func NewLocalBackend(store contacts.Store, logger *zap.Logger) *LocalBackend {
	return &LocalBackend{
		root:     routes.NewRoot(store, logger),
		contacts: routes.NewContacts(store, logger),
	}
}

func (b *LocalBackend) Load(ctx context.Context, u *url.URL) (routes.RootData, error) {
	return b.root.Load(ctx, u)
}

func (b *LocalBackend) Act(ctx context.Context) (routes.Redirect, error) {
	return b.root.Act(ctx)
}

func (b *LocalBackend) Contact(ctx context.Context, id string) (domain.Contact, error) {
	return b.contacts.Show(ctx, id)
}
