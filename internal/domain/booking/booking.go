package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// Booking is the aggregate root for one reservation of an item over a time
// interval. Item and booker references are immutable after creation; only the
// state (and version) change over the lifecycle.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	state    State

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in waiting state.
//
// The interval invariant (start strictly before end) is enforced here so an
// inverted interval can never reach persistence, regardless of what the
// boundary layer checked.
func NewBooking(bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError("booking start and end are required")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("booking end must be after start")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		state:     StateWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	state State,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		state:     state,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the booker's user identifier.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the interval start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the interval end.
func (b *Booking) End() time.Time { return b.end }

// State returns the current lifecycle state.
func (b *Booking) State() State { return b.state }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsBookedBy checks if the booking was made by the given user.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Approve transitions the booking from waiting to approved.
func (b *Booking) Approve() error {
	return b.transition(StateApproved)
}

// Reject transitions the booking from waiting to rejected.
func (b *Booking) Reject() error {
	return b.transition(StateRejected)
}

// Cancel transitions the booking to canceled if its state allows it.
func (b *Booking) Cancel() error {
	return b.transition(StateCanceled)
}

func (b *Booking) transition(target State) error {
	if !b.state.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.state), string(target))
	}
	b.state = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
