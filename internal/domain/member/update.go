package member

import (
	"fmt"
	"strings"
)

// Update is a change to exactly one editable Member field.
// The set of implementations is closed: NameUpdate, EmailUpdate, PhoneUpdate, StatusUpdate.
type Update interface {
	// Field returns the column name the update writes.
	Field() string
	// NewValue returns the value to store.
	NewValue() string
	isUpdate()
}

// NameUpdate replaces the member name.
type NameUpdate struct{ Value string }

// EmailUpdate replaces the member email. An empty value clears it.
type EmailUpdate struct{ Value string }

// PhoneUpdate replaces the member phone.
type PhoneUpdate struct{ Value string }

// StatusUpdate replaces the member status.
type StatusUpdate struct{ Value string }

func (NameUpdate) Field() string   { return "name" }
func (EmailUpdate) Field() string  { return "email" }
func (PhoneUpdate) Field() string  { return "phone" }
func (StatusUpdate) Field() string { return "status" }

func (u NameUpdate) NewValue() string   { return u.Value }
func (u EmailUpdate) NewValue() string  { return u.Value }
func (u PhoneUpdate) NewValue() string  { return u.Value }
func (u StatusUpdate) NewValue() string { return u.Value }

func (NameUpdate) isUpdate()   {}
func (EmailUpdate) isUpdate()  {}
func (PhoneUpdate) isUpdate()  {}
func (StatusUpdate) isUpdate() {}

// Normalize trims surrounding whitespace from the value carried by u, as New does for new members.
// PRE: none
// POST: Returns an update of the same kind; unknown kinds are returned unchanged
func Normalize(u Update) Update {
	switch v := u.(type) {
	case NameUpdate:
		return NameUpdate{Value: strings.TrimSpace(v.Value)}
	case EmailUpdate:
		return EmailUpdate{Value: strings.TrimSpace(v.Value)}
	case PhoneUpdate:
		return PhoneUpdate{Value: strings.TrimSpace(v.Value)}
	case StatusUpdate:
		return StatusUpdate{Value: strings.TrimSpace(v.Value)}
	default:
		return u
	}
}

// ValidateUpdate checks the value carried by u.
// PRE: u is non-nil
// POST: Returns ErrNameRequired for a blank name, nil otherwise
func ValidateUpdate(u Update) error {
	switch v := u.(type) {
	case NameUpdate:
		if strings.TrimSpace(v.Value) == "" {
			return ErrNameRequired
		}
		return nil
	case EmailUpdate, PhoneUpdate, StatusUpdate:
		return nil
	default:
		return fmt.Errorf("unsupported member update %T", u)
	}
}
