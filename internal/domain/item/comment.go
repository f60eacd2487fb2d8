package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// Comment is feedback left on an item by a user who completed an approved
// booking for it. The author name is denormalized at creation time.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a new comment with validated fields.
func NewComment(itemID, authorID uuid.UUID, authorName, text string) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	return &Comment{
		id:         uuid.New(),
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(
	id, itemID, authorID uuid.UUID,
	authorName, text string,
	createdAt time.Time,
) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) AuthorName() string   { return c.authorName }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
