package service

import (
	"context"
	"time"

	"innkeeper/pkg/kafka"
	"innkeeper/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	eventSource        = "bookings"
	eventSchemaVersion = "1"
)

// EventPublisher is the outbound side of pkg/kafka.Producer. A nil
// publisher disables event publishing entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingEvent struct {
	Type       string         `json:"type"`
	Booking    *model.Booking `json:"booking"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// publishEvent emits a lifecycle event keyed by room number so consumers
// observe per-room ordering. Publish failures are logged and swallowed:
// the booking commit has already happened and must not be reported as failed.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.RoomNumber).
		WithEventType(eventType).
		WithSource(eventSource).
		WithSchemaVersion(eventSchemaVersion).
		WithValue(BookingEvent{
			Type:       eventType,
			Booking:    booking,
			OccurredAt: s.now().UTC(),
		}).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
