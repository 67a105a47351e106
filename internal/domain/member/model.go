package member

import (
	"errors"
	"strings"
	"time"
)

// JoinedOnLayout is the date format stored in joined_on.
const JoinedOnLayout = "2006-01-02"

// Status values offered by the shell. Any other string is still accepted.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Domain errors
var (
	ErrNotFound       = errors.New("member not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNameRequired   = errors.New("member name cannot be empty")
)

// Member holds state for a single person's record.
type Member struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	JoinedOn string
	Status   string
}

// New builds an unsaved Member joined on the given day.
// PRE: name is non-empty after trimming
// POST: Returns a Member with Status=Active and JoinedOn set from now; ID is zero until stored
func New(name, email, phone string, now time.Time) (Member, error) {
	m := Member{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Phone:    strings.TrimSpace(phone),
		JoinedOn: now.Format(JoinedOnLayout),
		Status:   StatusActive,
	}
	if err := m.Validate(); err != nil {
		return Member{}, err
	}
	return m, nil
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Apply rewrites the single field carried by u.
// PRE: u is one of NameUpdate, EmailUpdate, PhoneUpdate, StatusUpdate
// POST: Exactly one field changed; ID and JoinedOn untouched
func (m *Member) Apply(u Update) {
	switch v := u.(type) {
	case NameUpdate:
		m.Name = v.Value
	case EmailUpdate:
		m.Email = v.Value
	case PhoneUpdate:
		m.Phone = v.Value
	case StatusUpdate:
		m.Status = v.Value
	}
}
