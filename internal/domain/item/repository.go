package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// ItemRepository defines the persistence contract for items and their comments.
type ItemRepository interface {
	// Save persists a new item.
	Save(ctx context.Context, item *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDs retrieves the items with the given identifiers, keyed by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Item, error)

	// FindByOwnerID retrieves items listed by the given owner, oldest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*Item, error)

	// FindByRequestIDs retrieves items answering the given item requests,
	// grouped by request ID.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]*Item, error)

	// Search retrieves available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string, page domain.PageRequest) ([]*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *Item) error

	// Delete removes an item.
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment *Comment) error

	// FindCommentsByItemID retrieves an item's comments, newest first.
	FindCommentsByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// FindCommentsByItemIDs retrieves comments for a batch of items, grouped
	// by item ID, newest first within each group.
	FindCommentsByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*Comment, error)
}
