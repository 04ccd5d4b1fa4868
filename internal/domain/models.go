package domain

import (
	"strings"
	"time"
)

// Contact represents a single address book entry
type Contact struct {
	ID        string    `json:"id"`
	First     string    `json:"first,omitempty"`
	Last      string    `json:"last,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`  // image URL
	Twitter   string    `json:"twitter,omitempty"` // handle, with or without the leading @
	Notes     string    `json:"notes,omitempty"`
	Favorite  bool      `json:"favorite,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName returns "first last" trimmed and whether the contact has any name at all
func (c Contact) DisplayName() (string, bool) {
	name := strings.TrimSpace(strings.TrimSpace(c.First) + " " + strings.TrimSpace(c.Last))
	return name, name != ""
}

// TwitterHandle returns the handle without a leading @
func (c Contact) TwitterHandle() string {
	return strings.TrimPrefix(strings.TrimSpace(c.Twitter), "@")
}

// ContactUpdate carries the editable fields of a contact.
// Nil fields are left untouched.
type ContactUpdate struct {
	First    *string
	Last     *string
	Avatar   *string
	Twitter  *string
	Notes    *string
	Favorite *bool
}

// Apply copies the set fields onto c
func (u ContactUpdate) Apply(c *Contact) {
	if u.First != nil {
		c.First = *u.First
	}
	if u.Last != nil {
		c.Last = *u.Last
	}
	if u.Avatar != nil {
		c.Avatar = *u.Avatar
	}
	if u.Twitter != nil {
		c.Twitter = *u.Twitter
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
	if u.Favorite != nil {
		c.Favorite = *u.Favorite
	}
}
