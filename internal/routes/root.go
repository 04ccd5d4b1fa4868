// Package routes implements the loaders and actions behind the contact pages.
// Front ends (HTTP, terminal) call these and only decide how to present the results.
package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
	"rolodex/internal/search"
)

var (
	// ErrDataFetch wraps failures of the contact list read
	ErrDataFetch = errors.New("fetch contacts")
	// ErrDataCreate wraps failures creating a contact
	ErrDataCreate = errors.New("create contact")
)

// RootData is what the root loader hands to the layout
type RootData struct {
	Contacts []domain.Contact `json:"contacts"`
	Query    *string          `json:"query"`
}

// Redirect tells the front end where to go after an action
type Redirect struct {
	Location string
	Status   int
}

// Root is the root layout route: the sidebar's loader and the New action
type Root struct {
	store  contacts.Store
	logger *zap.Logger
}

// NewRoot creates the root route over store
func NewRoot(store contacts.Store, logger *zap.Logger) *Root {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Root{store: store, logger: logger.Named("root")}
}

// Load reads the query parameter of u and fetches the matching contacts.
// Store failures are returned wrapped in ErrDataFetch, without retry.
func (r *Root) Load(ctx context.Context, u *url.URL) (RootData, error) {
	query := search.QueryFrom(u)

	list, err := r.store.List(ctx, query)
	if err != nil {
		return RootData{}, fmt.Errorf("%w: %w", ErrDataFetch, err)
	}
	if list == nil {
		list = []domain.Contact{}
	}

	r.logger.Debug("root loaded",
		zap.Stringp("query", query),
		zap.Int("contacts", len(list)))
	return RootData{Contacts: list, Query: query}, nil
}

// Act creates an empty contact and redirects to its edit page.
// Submitted form values are ignored.
func (r *Root) Act(ctx context.Context) (Redirect, error) {
	c, err := r.store.CreateEmpty(ctx)
	if err != nil {
		return Redirect{}, fmt.Errorf("%w: %w", ErrDataCreate, err)
	}
	r.logger.Info("contact created", zap.String("id", c.ID))
	return Redirect{Location: EditPath(c.ID), Status: http.StatusSeeOther}, nil
}

// ContactPath is the detail route of a contact
func ContactPath(id string) string {
	return "/contacts/" + url.PathEscape(id)
}

// EditPath is the edit route of a contact
func EditPath(id string) string {
	return ContactPath(id) + "/edit"
}
