package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/domain"
	userDomain "github.com/circleshare/service-sharing/internal/domain/user"
)

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest is the payload for a partial user update.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserService manages the user directory.
type UserService struct {
	users  userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	return toUserResponse(u), nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// ListUsers retrieves users with pagination.
func (s *UserService) ListUsers(ctx context.Context, from, size int) (*domain.PaginatedResult[*UserResponse], error) {
	page, err := domain.NewPageRequest(from, size)
	if err != nil {
		return nil, err
	}

	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = toUserResponse(u)
	}
	result := domain.NewPaginatedResult(responses, total, page.Page, page.Limit())
	return &result, nil
}

// UpdateUser applies a partial update to a user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.Update(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.String("user_id", u.ID().String()))
	return toUserResponse(u), nil
}

// DeleteUser removes a user from the directory.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

// SyncUser applies an identity event from the directory stream. The row is
// created or overwritten wholesale; events carry full state.
func (s *UserService) SyncUser(ctx context.Context, id uuid.UUID, name, email string) error {
	now := time.Now().UTC()
	u := userDomain.Reconstruct(id, name, email, now, now)
	if err := s.users.Upsert(ctx, u); err != nil {
		return err
	}
	s.logger.Info("user synced", zap.String("user_id", id.String()))
	return nil
}

// RemoveUser applies a deletion event from the directory stream. A missing
// row is not an error: deletes are idempotent.
func (s *UserService) RemoveUser(ctx context.Context, id uuid.UUID) error {
	err := s.users.Delete(ctx, id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	s.logger.Info("user removed", zap.String("user_id", id.String()))
	return nil
}

func toUserResponse(u *userDomain.User) *UserResponse {
	return &UserResponse{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}
