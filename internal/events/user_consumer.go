package events

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/application"
	"github.com/circleshare/service-sharing/internal/pkg/kafka"
)

// TopicUserEvents is the identity-directory stream this service mirrors.
const TopicUserEvents = "user.events"

// Identity event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEventPayload is the data carried by identity events.
type UserEventPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// UserEventConsumer mirrors the platform's user directory into the local
// users table so booking flows never call out to the identity service.
type UserEventConsumer struct {
	consumer *kafka.Consumer
	users    *application.UserService
	logger   *zap.Logger
}

// NewUserEventConsumer creates a consumer joining the given group on the
// user events topic.
func NewUserEventConsumer(brokers []string, groupID string, users *application.UserService, logger *zap.Logger) *UserEventConsumer {
	return &UserEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicUserEvents, logger),
		users:    users,
		logger:   logger,
	}
}

// Start consumes identity events until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handle)
}

func (c *UserEventConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	event, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		return err
	}

	var payload UserEventPayload
	if err := event.ParseData(&payload); err != nil {
		return err
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		c.logger.Warn("skipping event with malformed user ID",
			zap.String("type", event.Type),
			zap.String("user_id", payload.UserID),
		)
		return nil
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		return c.users.SyncUser(ctx, userID, payload.Name, payload.Email)
	case EventUserDeleted:
		return c.users.RemoveUser(ctx, userID)
	default:
		c.logger.Debug("ignoring event", zap.String("type", event.Type))
		return nil
	}
}

// Close closes the underlying reader.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}
