package model

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserEmail  string    `json:"user_email" bson:"user_email" validate:"required,min=3,max=254"`
	RoomNumber string    `json:"room_number" bson:"room_number" validate:"required,min=1,max=20"`
	StartTime  time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	TotalPrice float64   `json:"total_price" bson:"total_price" validate:"gte=0"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=active cancelled"`
	// RefundAmount is set only once the booking has been cancelled.
	RefundAmount *float64  `json:"refund_amount,omitempty" bson:"refund_amount,omitempty" validate:"omitempty,gte=0"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Active reports whether the booking participates in conflict checks.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

// BookingRequest is the mutable field set accepted by create and edit
// operations. Price, status and refund amount are always derived server-side.
type BookingRequest struct {
	UserEmail  string    `json:"user_email" validate:"required,min=3,max=254"`
	RoomNumber string    `json:"room_number" validate:"required,min=1,max=20"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
}

// BookingFilter narrows List results. All present filters are ANDed.
// The time range is applied only when both bounds are present and selects
// bookings whose start time falls inside [StartTime, EndTime] inclusive.
type BookingFilter struct {
	RoomNumber string
	RoomType   string
	StartTime  *time.Time
	EndTime    *time.Time
}
