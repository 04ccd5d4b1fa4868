package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
)

// Editable form fields of a contact
var editFields = []string{"first", "last", "twitter", "avatar", "notes"}

// Contacts serves the routes below /contacts/{id}
type Contacts struct {
	store  contacts.Store
	logger *zap.Logger
}

// NewContacts creates the contact routes over store
func NewContacts(store contacts.Store, logger *zap.Logger) *Contacts {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contacts{store: store, logger: logger.Named("contacts")}
}

// Show loads a single contact; unknown ids yield contacts.ErrNotFound
func (c *Contacts) Show(ctx context.Context, id string) (domain.Contact, error) {
	contact, err := c.store.Get(ctx, id)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("load contact %s: %w", id, err)
	}
	return contact, nil
}

// Update saves the edit form and redirects to the contact
func (c *Contacts) Update(ctx context.Context, id string, form url.Values) (Redirect, error) {
	update := formUpdate(form)
	if _, err := c.store.Update(ctx, id, update); err != nil {
		return Redirect{}, fmt.Errorf("update contact %s: %w", id, err)
	}
	c.logger.Info("contact updated", zap.String("id", id))
	return Redirect{Location: ContactPath(id), Status: http.StatusSeeOther}, nil
}

// Destroy deletes a contact and redirects to the index
func (c *Contacts) Destroy(ctx context.Context, id string) (Redirect, error) {
	if err := c.store.Delete(ctx, id); err != nil {
		return Redirect{}, fmt.Errorf("delete contact %s: %w", id, err)
	}
	c.logger.Info("contact deleted", zap.String("id", id))
	return Redirect{Location: "/", Status: http.StatusSeeOther}, nil
}

// Favorite sets the favorite flag from the form's "favorite" field
func (c *Contacts) Favorite(ctx context.Context, id string, form url.Values) (domain.Contact, error) {
	fav := form.Get("favorite") == "true"
	contact, err := c.store.Update(ctx, id, domain.ContactUpdate{Favorite: &fav})
	if err != nil {
		return domain.Contact{}, fmt.Errorf("favorite contact %s: %w", id, err)
	}
	return contact, nil
}

// formUpdate picks the editable fields present in form
func formUpdate(form url.Values) domain.ContactUpdate {
	var u domain.ContactUpdate
	for _, field := range editFields {
		if _, ok := form[field]; !ok {
			continue
		}
		v := strings.TrimSpace(form.Get(field))
		switch field {
		case "first":
			u.First = &v
		case "last":
			u.Last = &v
		case "twitter":
			u.Twitter = &v
		case "avatar":
			u.Avatar = &v
		case "notes":
			u.Notes = &v
		}
	}
	return u
}
