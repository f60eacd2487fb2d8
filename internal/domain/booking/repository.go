package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Update persists a state change with optimistic locking: the write only
	// applies if the stored version is one behind the aggregate's, otherwise
	// it fails with a ConflictError.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByBooker retrieves the selection of bookings made by the given user.
	ListByBooker(ctx context.Context, bookerID uuid.UUID, sel Selection, page domain.PageRequest) ([]*Booking, error)

	// ListByOwner retrieves the selection of bookings on items owned by the given user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, sel Selection, page domain.PageRequest) ([]*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page domain.PageRequest) ([]*Booking, int64, error)

	// CountByState returns booking counts grouped by persisted state (admin).
	CountByState(ctx context.Context) (map[string]int64, error)

	// LastForItem returns the most recent approved booking with start <= now,
	// or nil if the item has none.
	LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// NextForItem returns the earliest approved booking with start >= now,
	// or nil if the item has none.
	NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*Booking, error)

	// ListApprovedForItems retrieves every approved booking for the given
	// items, ordered by start ascending, for in-memory partitioning.
	ListApprovedForItems(ctx context.Context, itemIDs []uuid.UUID) ([]*Booking, error)

	// HasFinishedApprovedBooking reports whether the user has at least one
	// approved booking on the item that ended before now.
	HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)
}
