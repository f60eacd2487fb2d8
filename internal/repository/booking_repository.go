package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/circleshare/service-sharing/internal/domain"
	bookingDomain "github.com/circleshare/service-sharing/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null;index"`
	Status    string    `gorm:"not null;size:20;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Update persists a state change with optimistic locking. Concurrent deciders
// race on the version column; the loser sees zero affected rows.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.State()),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Delete removes a booking.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// ListByBooker retrieves the selection of bookings made by the given user.
func (r *GormBookingRepository) ListByBooker(ctx context.Context, bookerID uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).Where("bookings.booker_id = ?", bookerID)
	q = applySelection(q, sel)

	var models []BookingModel
	if err := q.Offset(page.Offset()).Limit(page.Limit()).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// ListByOwner retrieves the selection of bookings on items owned by the given user.
func (r *GormBookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	q = applySelection(q, sel)

	var models []BookingModel
	if err := q.Offset(page.Offset()).Limit(page.Limit()).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}
	return toDomainBookings(models)
}

// applySelection renders a Selection into WHERE and ORDER BY clauses. The
// filter switch is exhaustive: every temporal window has its own condition,
// and anything else is a status filter by construction.
func applySelection(q *gorm.DB, sel bookingDomain.Selection) *gorm.DB {
	switch sel.Filter {
	case bookingDomain.FilterAll:
		return q.Order("bookings.start_at DESC")
	case bookingDomain.FilterFuture:
		return q.Where("bookings.start_at > ?", sel.Now).Order("bookings.start_at DESC")
	case bookingDomain.FilterPast:
		return q.Where("bookings.end_at < ?", sel.Now).Order("bookings.end_at DESC")
	case bookingDomain.FilterCurrent:
		return q.Where("bookings.start_at <= ? AND bookings.end_at > ?", sel.Now, sel.Now).
			Order("bookings.end_at DESC")
	default:
		state, _ := sel.Filter.State()
		return q.Where("bookings.status = ?", string(state)).Order("bookings.start_at DESC")
	}
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page domain.PageRequest) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByState returns booking counts grouped by persisted state (admin).
func (r *GormBookingRepository) CountByState(ctx context.Context) (map[string]int64, error) {
	type stateCount struct {
		Status string
		Count  int64
	}
	var results []stateCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by state: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// LastForItem returns the most recent approved booking started by now.
func (r *GormBookingRepository) LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at <= ?", itemID, string(bookingDomain.StateApproved), now).
		Order("start_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking: %w", err)
	}
	return toDomainBooking(&model)
}

// NextForItem returns the earliest approved booking starting at or after now.
func (r *GormBookingRepository) NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at >= ?", itemID, string(bookingDomain.StateApproved), now).
		Order("start_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking: %w", err)
	}
	return toDomainBooking(&model)
}

// ListApprovedForItems retrieves every approved booking for the given items,
// ordered by start ascending.
func (r *GormBookingRepository) ListApprovedForItems(ctx context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id IN ? AND status = ?", itemIDs, string(bookingDomain.StateApproved)).
		Order("start_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved bookings: %w", err)
	}
	return toDomainBookings(models)
}

// HasFinishedApprovedBooking reports whether the user completed an approved
// booking on the item before now.
func (r *GormBookingRepository) HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_at < ?",
			bookerID, itemID, string(bookingDomain.StateApproved), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.State()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	state, err := bookingDomain.ParseState(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID, m.ItemID, m.BookerID,
		m.StartAt, m.EndAt,
		state,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
