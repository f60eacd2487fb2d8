package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/circleshare/service-sharing/internal/pkg/kafka"
)

// TopicBookingEvents is the topic booking lifecycle events are published on.
const TopicBookingEvents = "booking.events"

// eventSource identifies this service in the CloudEvent envelope.
const eventSource = "service-sharing"

// Booking lifecycle event types.
const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
	EventBookingCanceled = "booking.canceled"
	EventBookingDeleted  = "booking.deleted"
)

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// BookingEventPayload is the data carried by booking lifecycle events.
type BookingEventPayload struct {
	BookingID string   `json:"booking_id"`
	ItemID    string   `json:"item_id"`
	BookerID  string   `json:"booker_id"`
	Start     DateTime `json:"start"`
	End       DateTime `json:"end"`
	Status    string   `json:"status"`
}

// publishEvent wraps a payload in a CloudEvent and publishes it. Publishing is
// best-effort: a broker failure is logged and never fails the operation that
// produced the event.
func publishEvent(ctx context.Context, producer EventPublisher, logger *zap.Logger, eventType string, payload interface{}) {
	if producer == nil {
		return
	}
	event, err := kafka.NewCloudEvent(eventSource, eventType, payload)
	if err != nil {
		logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := producer.PublishEvent(ctx, TopicBookingEvents, event); err != nil {
		logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
