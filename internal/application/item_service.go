package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/domain"
	bookingDomain "github.com/circleshare/service-sharing/internal/domain/booking"
	itemDomain "github.com/circleshare/service-sharing/internal/domain/item"
	userDomain "github.com/circleshare/service-sharing/internal/domain/user"
)

// CreateItemRequest is the payload for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest is the payload for a partial item update. Absent fields
// keep their stored values.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest is the payload for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse is the API representation of a comment.
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    DateTime  `json:"created"`
}

// BookingShortResponse is the compact booking projection attached to item
// payloads for owners.
type BookingShortResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
}

// ItemResponse is the API representation of an item. LastBooking and
// NextBooking are populated only when the caller owns the item.
type ItemResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	RequestID   *uuid.UUID            `json:"requestId,omitempty"`
	Comments    []CommentResponse     `json:"comments"`
	LastBooking *BookingShortResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingShortResponse `json:"nextBooking,omitempty"`
}

// ItemService orchestrates the item catalog and its comments.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		logger:   logger,
	}
}

// AddItem lists a new item for the given owner.
func (s *ItemService) AddItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", ownerID.String())
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	return toItemResponse(it, nil, nil, nil), nil
}

// UpdateItem applies a partial update. Only the owner may edit an item.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("only the owner can edit an item")
	}

	it.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.String("item_id", it.ID().String()))
	return toItemResponse(it, nil, nil, nil), nil
}

// GetItem retrieves an item with its comments. Booking projections are a
// management view: they attach only when the caller owns the item.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*ItemResponse, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.items.FindCommentsByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var last, next *bookingDomain.Booking
	if it.IsOwnedBy(userID) {
		now := time.Now().UTC()
		last, err = s.bookings.LastForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		next, err = s.bookings.NextForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
	}
	return toItemResponse(it, comments, last, next), nil
}

// GetMyItems retrieves the caller's items with comments and booking
// projections, resolved with batch lookups.
func (s *ItemService) GetMyItems(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*ItemResponse, error) {
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*ItemResponse{}, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}

	comments, err := s.items.FindCommentsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	approved, err := s.bookings.ListApprovedForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	lastByItem, nextByItem := partitionApproved(approved, time.Now().UTC())

	responses := make([]*ItemResponse, len(items))
	for i, it := range items {
		responses[i] = toItemResponse(it, comments[it.ID()], lastByItem[it.ID()], nextByItem[it.ID()])
	}
	return responses, nil
}

// partitionApproved splits approved bookings (ordered by start ascending)
// into per-item last and next projections around the given moment. For the
// past window the earliest booking wins; for the future window the latest
// does.
func partitionApproved(approved []*bookingDomain.Booking, now time.Time) (last, next map[uuid.UUID]*bookingDomain.Booking) {
	last = make(map[uuid.UUID]*bookingDomain.Booking)
	next = make(map[uuid.UUID]*bookingDomain.Booking)
	for _, bk := range approved {
		if !bk.Start().After(now) {
			if _, seen := last[bk.ItemID()]; !seen {
				last[bk.ItemID()] = bk
			}
		} else {
			next[bk.ItemID()] = bk
		}
	}
	return last, next
}

// SearchItems retrieves available items matching the text. A blank query
// returns an empty result without touching storage.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*ItemResponse, error) {
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*ItemResponse{}, nil
	}

	items, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, len(items))
	for i, it := range items {
		responses[i] = toItemResponse(it, nil, nil, nil)
	}
	return responses, nil
}

// DeleteItem removes an item. Only the owner may delete it.
func (s *ItemService) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !it.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("only the owner can delete an item")
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("item_id", itemID.String()))
	return nil
}

// AddComment leaves feedback on an item. The author must have an approved
// booking for the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentResponse, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.bookings.HasFinishedApprovedBooking(ctx, authorID, it.ID(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.NewValidationError("no completed approved booking for this item")
	}

	comment, err := itemDomain.NewComment(it.ID(), authorID, author.Name(), req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.items.SaveComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		zap.String("comment_id", comment.ID().String()),
		zap.String("item_id", it.ID().String()),
	)
	resp := toCommentResponse(comment)
	return &resp, nil
}

func toItemResponse(it *itemDomain.Item, comments []*itemDomain.Comment, last, next *bookingDomain.Booking) *ItemResponse {
	resp := &ItemResponse{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.IsAvailable(),
		RequestID:   it.RequestID(),
		Comments:    make([]CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}
	if last != nil {
		resp.LastBooking = &BookingShortResponse{ID: last.ID(), BookerID: last.BookerID()}
	}
	if next != nil {
		resp.NextBooking = &BookingShortResponse{ID: next.ID(), BookerID: next.BookerID()}
	}
	return resp
}

func toCommentResponse(c *itemDomain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    NewDateTime(c.CreatedAt()),
	}
}
