package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// ItemRequest is a user's ask for an item that is not yet listed. Items
// created in answer reference the request by ID.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// NewItemRequest creates a new item request with validated fields.
func NewItemRequest(requesterID uuid.UUID, description string) (*ItemRequest, error) {
	if requesterID == uuid.Nil {
		return nil, domain.NewValidationError("requester ID is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}

	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data (no validation).
func Reconstruct(id, requesterID uuid.UUID, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) CreatedAt() time.Time   { return r.createdAt }

// IsRequestedBy checks if the request was posted by the given user.
func (r *ItemRequest) IsRequestedBy(userID uuid.UUID) bool {
	return r.requesterID == userID
}
