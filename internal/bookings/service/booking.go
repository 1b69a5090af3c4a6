package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/internal/bookings/repository"
	"innkeeper/internal/bookings/validator"
	roomserrors "innkeeper/internal/rooms/errors"
	roomsrepo "innkeeper/internal/rooms/repository"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/model"
	"innkeeper/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// Cancellation refund tiers, measured from the moment of cancellation to
// the booking's start. Thresholds are strict: exactly 48h earns the half
// refund, exactly 24h earns nothing.
const (
	fullRefundWindow = 48 * time.Hour
	halfRefundWindow = 24 * time.Hour
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	Edit(ctx context.Context, id string, req *model.BookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (float64, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	rooms     roomsrepo.RoomRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	rooms roomsrepo.RoomRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitizeRequest(req)
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	room, err := s.resolveRoom(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	// The advisory lock serializes check+commit per room; requests for
	// other rooms use different lock IDs and never contend.
	lockID, err := s.acquireRoomLock(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		UserEmail:  req.UserEmail,
		RoomNumber: req.RoomNumber,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalPrice: bookingPrice(req.StartTime, req.EndTime, room.PricePerHour),
		Status:     model.StatusActive,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.checkConflict(sessCtx, booking.RoomNumber, booking.StartTime, booking.EndTime, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_number", booking.RoomNumber, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, EventBookingCreated, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_number", booking.RoomNumber,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

func (s *bookingService) Edit(ctx context.Context, id string, req *model.BookingRequest) (*model.Booking, error) {
	existing, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.Active() {
		return nil, apperrors.Conflict("Cannot edit a cancelled booking")
	}

	s.sanitizeRequest(req)
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	room, err := s.resolveRoom(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireRoomLock(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	updated := *existing
	updated.UserEmail = req.UserEmail
	updated.RoomNumber = req.RoomNumber
	updated.StartTime = req.StartTime
	updated.EndTime = req.EndTime
	updated.TotalPrice = bookingPrice(req.StartTime, req.EndTime, room.PricePerHour)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Exclude the booking being edited so it never conflicts with itself.
		if err := s.checkConflict(sessCtx, updated.RoomNumber, updated.StartTime, updated.EndTime, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, &updated); err != nil {
			// The conditional write matched nothing: a cancellation
			// committed after our read. The terminal state wins.
			if errors.Is(err, bookingserrors.ErrNotActive) {
				return apperrors.Conflict("Cannot edit a cancelled booking")
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, EventBookingUpdated, &updated)
	s.cfg.Log.Info("Booking updated successfully", "id", id, "room_number", updated.RoomNumber)
	return &updated, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (float64, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return 0, err
	}

	// Cancellation is terminal; repeating it returns the refund computed
	// the first time without touching the record again.
	if !booking.Active() {
		if booking.RefundAmount != nil {
			return *booking.RefundAmount, nil
		}
		return 0, nil
	}

	refund := refundAmount(booking.TotalPrice, booking.StartTime, s.now())

	if err := s.repo.MarkCancelled(ctx, id, refund); err != nil {
		// Another cancellation won the race; its refund is the one on
		// record, so report that instead of re-tiering.
		if errors.Is(err, bookingserrors.ErrNotActive) {
			current, findErr := s.findBooking(ctx, id)
			if findErr != nil {
				return 0, findErr
			}
			if current.RefundAmount != nil {
				return *current.RefundAmount, nil
			}
			return 0, nil
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return 0, apperrors.Internal("Failed to cancel booking", err)
	}

	booking.Status = model.StatusCancelled
	booking.RefundAmount = &refund

	s.publishEvent(ctx, EventBookingCancelled, booking)
	s.cfg.Log.Info("Booking cancelled successfully",
		"id", id,
		"room_number", booking.RoomNumber,
		"refund_amount", refund,
	)
	return refund, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.findBooking(ctx, id)
}

func (s *bookingService) List(ctx context.Context, filter *model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	search := repository.SearchFilter{
		StartTime: filter.StartTime,
		EndTime:   filter.EndTime,
	}
	if filter.RoomNumber != "" {
		search.RoomNumber = sanitizer.SanitizeRoomNumber(filter.RoomNumber)
	}

	// Bookings do not carry the room type, so the filter resolves to the
	// set of matching room numbers first.
	if filter.RoomType != "" {
		numbers, err := s.rooms.FindNumbersByType(ctx, sanitizer.SanitizeRoomType(filter.RoomType))
		if err != nil {
			return nil, 0, apperrors.Internal("Failed to resolve room type filter", err)
		}
		if search.RoomNumber != "" {
			if !containsString(numbers, search.RoomNumber) {
				return []*model.Booking{}, 0, nil
			}
		} else {
			if len(numbers) == 0 {
				return []*model.Booking{}, 0, nil
			}
			search.RoomNumbers = numbers
		}
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByFilter(ctx, search)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.Query(ctx, search, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

// bookingPrice derives the total from the interval duration in hours and
// the room's hourly rate. Partial hours are billed proportionally.
func bookingPrice(startTime, endTime time.Time, pricePerHour float64) float64 {
	return endTime.Sub(startTime).Hours() * pricePerHour
}

// refundAmount applies the tiered cancellation policy against the
// booking's original price. A start already in the past earns nothing.
func refundAmount(totalPrice float64, startTime, now time.Time) float64 {
	timeUntilStart := startTime.Sub(now)
	switch {
	case timeUntilStart > fullRefundWindow:
		return totalPrice
	case timeUntilStart > halfRefundWindow:
		return totalPrice / 2
	default:
		return 0
	}
}

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.UserEmail = sanitizer.SanitizeEmail(req.UserEmail)
	req.RoomNumber = sanitizer.SanitizeRoomNumber(req.RoomNumber)
}

func (s *bookingService) validateRequest(req *model.BookingRequest) error {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) resolveRoom(ctx context.Context, roomNumber string) (*model.Room, error) {
	room, err := s.rooms.FindByNumber(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomNumber)
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

// acquireRoomLock creates the per-room advisory lock. A duplicate key error
// means another writer holds the room; the caller surfaces that as a
// conflict rather than waiting.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomNumber string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomNumber)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.LockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This room is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire room lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
