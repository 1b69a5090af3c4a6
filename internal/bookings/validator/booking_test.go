package validator

import (
	"testing"
	"time"

	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &model.BookingRequest{
		UserEmail:  "guest@example.com",
		RoomNumber: "101",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_EndBeforeStart(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.EndTime = req.StartTime.Add(-1 * time.Hour)

	err := v.ValidateRequest(req)
	if err == nil {
		t.Fatal("expected an error for end before start")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if verrs[0].Field != "EndTime" {
		t.Errorf("expected EndTime field error, got %s", verrs[0].Field)
	}
}

func TestValidateRequest_ZeroDuration(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.EndTime = req.StartTime

	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected zero-duration interval to be rejected")
	}
}

func TestValidateRequest_MissingFields(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
	}{
		{"missing email", func(r *model.BookingRequest) { r.UserEmail = "" }},
		{"missing room number", func(r *model.BookingRequest) { r.RoomNumber = "" }},
		{"missing start time", func(r *model.BookingRequest) { r.StartTime = time.Time{} }},
		{"missing end time", func(r *model.BookingRequest) { r.EndTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if err := v.ValidateRequest(req); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidate_FullBooking(t *testing.T) {
	v := newTestValidator()

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := &model.Booking{
		UserEmail:  "guest@example.com",
		RoomNumber: "101",
		StartTime:  start,
		EndTime:    start.Add(90 * time.Minute),
		TotalPrice: 30,
		Status:     model.StatusActive,
	}

	if err := v.Validate(booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booking.Status = "pending"
	if err := v.Validate(booking); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}
