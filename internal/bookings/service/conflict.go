package service

import (
	"context"
	"fmt"
	"time"

	apperrors "innkeeper/pkg/errors"
)

// overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect. Back-to-back intervals sharing an endpoint do
// not overlap.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// checkConflict decides whether a candidate interval collides with any
// active booking on the room, skipping excludeID so an edit never conflicts
// with itself. It has no side effects; callers run it inside the same
// transaction as the commit so the decision cannot go stale.
func (s *bookingService) checkConflict(ctx context.Context, roomNumber string, startTime, endTime time.Time, excludeID string) error {
	existing, err := s.repo.FindOverlapping(ctx, roomNumber, startTime, endTime, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == excludeID || !b.Active() {
			continue
		}
		if overlaps(b.StartTime, b.EndTime, startTime, endTime) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room %s is not available for the specified time slot (taken %s - %s)",
				roomNumber,
				b.StartTime.Format(time.RFC3339),
				b.EndTime.Format(time.RFC3339),
			))
		}
	}
	return nil
}
