package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "innkeeper/pkg/errors"
	httputil "innkeeper/pkg/http"
	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFn  func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	editFn    func(ctx context.Context, id string, req *model.BookingRequest) (*model.Booking, error)
	cancelFn  func(ctx context.Context, id string) (float64, error)
	getByIDFn func(ctx context.Context, id string) (*model.Booking, error)
	listFn    func(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	return m.createFn(ctx, req)
}

func (m *mockBookingService) Edit(ctx context.Context, id string, req *model.BookingRequest) (*model.Booking, error) {
	return m.editFn(ctx, id, req)
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) (float64, error) {
	return m.cancelFn(ctx, id)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingService) List(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.listFn(ctx, filter, limit, offset)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func sampleBooking() *model.Booking {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &model.Booking{
		ID:         "663000000000000000000001",
		UserEmail:  "guest@example.com",
		RoomNumber: "101",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		TotalPrice: 40,
		Status:     model.StatusActive,
	}
}

func TestCreate_ReturnsCreatedBooking(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			return sampleBooking(), nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	body := `{"user_email":"guest@example.com","room_number":"101","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var resp httputil.SuccessResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data == nil {
		t.Error("expected booking data in response")
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCreate_ServiceErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"room not found", apperrors.NotFoundWithID("Room", "999"), http.StatusNotFound},
		{"slot taken", apperrors.Conflict("slot taken"), http.StatusConflict},
		{"invalid interval", apperrors.Validation("validation failed", nil), http.StatusUnprocessableEntity},
		{"store down", apperrors.Internal("boom", nil), http.StatusInternalServerError},
	}

	body := `{"user_email":"guest@example.com","room_number":"101","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T12:00:00Z"}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFn: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
					return nil, tt.serviceErr
				},
			}
			h := NewBookingHandler(svc, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
			w := httptest.NewRecorder()

			h.Create(w, req, httprouter.Params{})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestGetByID_ReturnsBooking(t *testing.T) {
	svc := &mockBookingService{
		getByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
			if id != "663000000000000000000001" {
				t.Errorf("expected path id to reach the service, got %q", id)
			}
			return sampleBooking(), nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/663000000000000000000001", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req, httprouter.Params{{Key: "id", Value: "663000000000000000000001"}})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestList_ParsesFilters(t *testing.T) {
	var gotFilter *model.BookingFilter
	svc := &mockBookingService{
		listFn: func(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
			gotFilter = filter
			return []*model.Booking{sampleBooking()}, 1, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	url := "/api/v1/bookings?room_number=101&room_type=standard&start_time=2025-06-01T00:00:00Z&end_time=2025-06-02T00:00:00Z&limit=5&offset=10"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	h.List(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotFilter.RoomNumber != "101" || gotFilter.RoomType != "standard" {
		t.Errorf("unexpected filter: %+v", gotFilter)
	}
	if gotFilter.StartTime == nil || gotFilter.EndTime == nil {
		t.Error("expected both time bounds to be parsed")
	}

	var resp httputil.PaginatedResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 1 || resp.Limit != 5 || resp.Offset != 10 {
		t.Errorf("unexpected pagination metadata: %+v", resp)
	}
}

func TestList_InvalidTimeFormat(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?start_time=yesterday", nil)
	w := httptest.NewRecorder()

	h.List(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=abc", nil)
	w := httptest.NewRecorder()

	h.List(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestEdit_ReturnsUpdatedBooking(t *testing.T) {
	svc := &mockBookingService{
		editFn: func(ctx context.Context, id string, req *model.BookingRequest) (*model.Booking, error) {
			b := sampleBooking()
			b.TotalPrice = 60
			return b, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	body := `{"user_email":"guest@example.com","room_number":"101","start_time":"2025-06-01T10:00:00Z","end_time":"2025-06-01T13:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/id/663000000000000000000001", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Edit(w, req, httprouter.Params{{Key: "id", Value: "663000000000000000000001"}})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCancel_ReturnsRefund(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, id string) (float64, error) {
			return 50, nil
		},
	}
	h := NewBookingHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/id/663000000000000000000001/cancel", nil)
	w := httptest.NewRecorder()

	h.Cancel(w, req, httprouter.Params{{Key: "id", Value: "663000000000000000000001"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Data cancelResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.RefundAmount != 50 {
		t.Errorf("expected refund 50, got %v", resp.Data.RefundAmount)
	}
	if resp.Data.Status != model.StatusCancelled {
		t.Errorf("expected cancelled status, got %s", resp.Data.Status)
	}
}
