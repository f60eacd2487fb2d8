package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

// RequestRepository defines the persistence contract for item requests.
type RequestRepository interface {
	// Save persists a new item request.
	Save(ctx context.Context, request *ItemRequest) error

	// FindByID retrieves an item request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequesterID retrieves a user's own requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// FindOthers retrieves requests posted by other users, newest first.
	FindOthers(ctx context.Context, requesterID uuid.UUID, page domain.PageRequest) ([]*ItemRequest, error)
}
