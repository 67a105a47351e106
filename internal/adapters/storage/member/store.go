package member

import (
	"context"

	domain "roster/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	// Create inserts a new member and returns it with its generated ID.
	// Returns domain.ErrDuplicateEmail when a non-empty email is already taken.
	Create(ctx context.Context, value domain.Member) (domain.Member, error)
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	// List returns every member in ascending ID order.
	List(ctx context.Context) ([]domain.Member, error)
	// SearchByName returns members whose name contains fragment, ignoring ASCII case.
	SearchByName(ctx context.Context, fragment string) ([]domain.Member, error)
	// Update rewrites the single field carried by u.
	// Returns domain.ErrNotFound or domain.ErrDuplicateEmail.
	Update(ctx context.Context, id int64, u domain.Update) error
	// Delete removes the member unconditionally. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
