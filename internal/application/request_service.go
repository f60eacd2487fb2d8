package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/domain"
	itemDomain "github.com/circleshare/service-sharing/internal/domain/item"
	requestDomain "github.com/circleshare/service-sharing/internal/domain/request"
	userDomain "github.com/circleshare/service-sharing/internal/domain/user"
)

// CreateRequestRequest is the payload for posting an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestItemResponse is the item projection attached to request payloads.
type RequestItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Available bool      `json:"available"`
}

// RequestResponse is the API representation of an item request, with the
// items offered in answer.
type RequestResponse struct {
	ID          uuid.UUID             `json:"id"`
	Description string                `json:"description"`
	RequesterID uuid.UUID             `json:"requesterId"`
	Created     DateTime              `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

// RequestService manages item requests.
type RequestService struct {
	requests requestDomain.RequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.RequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	exists, err := s.users.Exists(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", requesterID.String())
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("item request created",
		zap.String("request_id", r.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	return toRequestResponse(r, nil), nil
}

// GetOwnRequests retrieves the caller's requests with answering items.
func (s *RequestService) GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]*RequestResponse, error) {
	exists, err := s.users.Exists(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", requesterID.String())
	}

	list, err := s.requests.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.hydrateRequests(ctx, list)
}

// GetAllRequests retrieves requests posted by other users, newest first.
func (s *RequestService) GetAllRequests(ctx context.Context, requesterID uuid.UUID, from, size int) ([]*RequestResponse, error) {
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	list, err := s.requests.FindOthers(ctx, requesterID, page)
	if err != nil {
		return nil, err
	}
	return s.hydrateRequests(ctx, list)
}

// GetRequest retrieves one request with its answering items.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID uuid.UUID) (*RequestResponse, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", userID.String())
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	responses, err := s.hydrateRequests(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// hydrateRequests attaches answering items to a batch of requests with one
// grouped lookup.
func (s *RequestService) hydrateRequests(ctx context.Context, list []*requestDomain.ItemRequest) ([]*RequestResponse, error) {
	requestIDs := make([]uuid.UUID, len(list))
	for i, r := range list {
		requestIDs[i] = r.ID()
	}

	itemsByRequest, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*RequestResponse, len(list))
	for i, r := range list {
		responses[i] = toRequestResponse(r, itemsByRequest[r.ID()])
	}
	return responses, nil
}

func toRequestResponse(r *requestDomain.ItemRequest, items []*itemDomain.Item) *RequestResponse {
	resp := &RequestResponse{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.RequesterID(),
		Created:     NewDateTime(r.CreatedAt()),
		Items:       make([]RequestItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, RequestItemResponse{
			ID:        it.ID(),
			Name:      it.Name(),
			OwnerID:   it.OwnerID(),
			Available: it.IsAvailable(),
		})
	}
	return resp
}
