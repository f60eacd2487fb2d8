package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/domain"
	bookingDomain "github.com/circleshare/service-sharing/internal/domain/booking"
	itemDomain "github.com/circleshare/service-sharing/internal/domain/item"
	userDomain "github.com/circleshare/service-sharing/internal/domain/user"
)

// CreateBookingRequest is the payload for placing a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  DateTime  `json:"start" binding:"required"`
	End    DateTime  `json:"end" binding:"required"`
}

// BookerResponse is the booker projection embedded in booking payloads.
type BookerResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookedItemResponse is the item projection embedded in booking payloads.
type BookedItemResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID     uuid.UUID          `json:"id"`
	Start  DateTime           `json:"start"`
	End    DateTime           `json:"end"`
	Status string             `json:"status"`
	Booker BookerResponse     `json:"booker"`
	Item   BookedItemResponse `json:"item"`
}

// BookingStatsResponse is the admin aggregate over booking states.
type BookingStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// BookingService orchestrates the booking lifecycle.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// AddBooking places a new booking in waiting state. Owners cannot book their
// own items; to them the item simply does not exist as a booking target.
func (s *BookingService) AddBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewNotFoundError("Item", req.ItemID.String())
	}
	if !it.IsAvailable() {
		return nil, domain.NewValidationError("item is not available for booking")
	}

	bk, err := bookingDomain.NewBooking(bookerID, req.ItemID, req.Start.Time(), req.End.Time())
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	publishEvent(ctx, s.producer, s.logger, EventBookingCreated, toBookingEventPayload(bk))

	return toBookingResponse(bk, booker, it), nil
}

// Decide approves or rejects a waiting booking on behalf of the item's owner.
// The state check runs before the ownership check, so a stranger probing an
// already-decided booking sees the state error rather than a not-found.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID uuid.UUID, approved bool) (*BookingResponse, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.State() != bookingDomain.StateWaiting {
		return nil, domain.NewInvalidStateError(string(bk.State()), string(bookingDomain.StateApproved))
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	eventType := EventBookingApproved
	if approved {
		err = bk.Approve()
	} else {
		err = bk.Reject()
		eventType = EventBookingRejected
	}
	if err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", string(bk.State())),
	)
	publishEvent(ctx, s.producer, s.logger, eventType, toBookingEventPayload(bk))

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	return toBookingResponse(bk, booker, it), nil
}

// GetByRelatedUserID retrieves a booking for its booker or the item's owner.
// Anyone else gets a not-found, never a forbidden: unrelated users must not
// learn the booking exists.
func (s *BookingService) GetByRelatedUserID(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(userID) && !it.IsOwnedBy(userID) {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	return toBookingResponse(bk, booker, it), nil
}

// ListByBooker retrieves the caller's own bookings filtered by state.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID uuid.UUID, stateRaw string, from, size int) ([]*BookingResponse, error) {
	return s.list(ctx, bookerID, stateRaw, from, size,
		func(ctx context.Context, id uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
			return s.bookings.ListByBooker(ctx, id, sel, page)
		})
}

// ListByOwner retrieves the bookings placed on the caller's items.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID uuid.UUID, stateRaw string, from, size int) ([]*BookingResponse, error) {
	return s.list(ctx, ownerID, stateRaw, from, size,
		func(ctx context.Context, id uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
			return s.bookings.ListByOwner(ctx, id, sel, page)
		})
}

func (s *BookingService) list(
	ctx context.Context,
	userID uuid.UUID,
	stateRaw string,
	from, size int,
	fetch func(context.Context, uuid.UUID, bookingDomain.Selection, domain.PageRequest) ([]*bookingDomain.Booking, error),
) ([]*BookingResponse, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", userID.String())
	}

	filter, err := bookingDomain.ParseFilter(stateRaw)
	if err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	// Capture "now" once so the temporal window and the ordering agree.
	sel := bookingDomain.NewSelection(filter, time.Now().UTC())
	list, err := fetch(ctx, userID, sel, page)
	if err != nil {
		return nil, err
	}
	return s.hydrateBookings(ctx, list)
}

// Cancel lets the booker withdraw a booking. Non-bookers get a not-found.
func (s *BookingService) Cancel(ctx context.Context, bookerID, bookingID uuid.UUID) (*BookingResponse, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(bookerID) {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	if err := bk.Cancel(); err != nil {
		return nil, err
	}
	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Info("booking canceled", zap.String("booking_id", bk.ID().String()))
	publishEvent(ctx, s.producer, s.logger, EventBookingCanceled, toBookingEventPayload(bk))

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	return toBookingResponse(bk, booker, it), nil
}

// DeleteBooking removes a booking at the item owner's request.
func (s *BookingService) DeleteBooking(ctx context.Context, ownerID, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return err
	}
	if !it.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("only the item owner can delete a booking")
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.logger.Info("booking deleted", zap.String("booking_id", bookingID.String()))
	publishEvent(ctx, s.producer, s.logger, EventBookingDeleted, toBookingEventPayload(bk))
	return nil
}

// ListAllBookings retrieves every booking with pagination (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, from, size int) (*domain.PaginatedResult[*BookingResponse], error) {
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	list, total, err := s.bookings.ListAll(ctx, page)
	if err != nil {
		return nil, err
	}

	responses, err := s.hydrateBookings(ctx, list)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(responses, total, page.Page, page.Limit())
	return &result, nil
}

// GetBookingStats returns booking counts grouped by state (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsResponse, error) {
	counts, err := s.bookings.CountByState(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsResponse{Total: total, ByStatus: counts}, nil
}

// hydrateBookings resolves item and booker projections for a page of bookings
// with two batch lookups.
func (s *BookingService) hydrateBookings(ctx context.Context, list []*bookingDomain.Booking) ([]*BookingResponse, error) {
	itemIDs := make([]uuid.UUID, 0, len(list))
	bookerIDs := make([]uuid.UUID, 0, len(list))
	for _, bk := range list {
		itemIDs = append(itemIDs, bk.ItemID())
		bookerIDs = append(bookerIDs, bk.BookerID())
	}

	items, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookers, err := s.users.FindByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*BookingResponse, 0, len(list))
	for _, bk := range list {
		responses = append(responses, toBookingResponse(bk, bookers[bk.BookerID()], items[bk.ItemID()]))
	}
	return responses, nil
}

func toBookingResponse(bk *bookingDomain.Booking, booker *userDomain.User, it *itemDomain.Item) *BookingResponse {
	resp := &BookingResponse{
		ID:     bk.ID(),
		Start:  NewDateTime(bk.Start()),
		End:    NewDateTime(bk.End()),
		Status: string(bk.State()),
	}
	if booker != nil {
		resp.Booker = BookerResponse{ID: booker.ID(), Name: booker.Name()}
	}
	if it != nil {
		resp.Item = BookedItemResponse{ID: it.ID(), Name: it.Name()}
	}
	return resp
}

func toBookingEventPayload(bk *bookingDomain.Booking) BookingEventPayload {
	return BookingEventPayload{
		BookingID: bk.ID().String(),
		ItemID:    bk.ItemID().String(),
		BookerID:  bk.BookerID().String(),
		Start:     NewDateTime(bk.Start()),
		End:       NewDateTime(bk.End()),
		Status:    string(bk.State()),
	}
}
