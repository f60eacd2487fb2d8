package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// UserRepository defines the persistence contract for the user directory.
type UserRepository interface {
	// Save persists a new user. A duplicate email fails with a ConflictError.
	Save(ctx context.Context, user *User) error

	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDs retrieves the users with the given identifiers, keyed by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)

	// Exists reports whether a user with the given ID is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List retrieves users with pagination, oldest first.
	List(ctx context.Context, page domain.PageRequest) ([]*User, int64, error)

	// Update persists changes to an existing user. A duplicate email fails
	// with a ConflictError.
	Update(ctx context.Context, user *User) error

	// Upsert inserts the user or overwrites an existing row with the same ID.
	// Used by the identity-event sync, not by the HTTP flows.
	Upsert(ctx context.Context, user *User) error

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}
