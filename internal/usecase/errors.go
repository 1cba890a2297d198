package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking-server/internal/delivery/http/middleware"
	"clinic-booking-server/internal/domain/entity"

	"github.com/google/uuid"
)

// Validation sentinels shared across usecases. These are detected before
// any store access and map to HTTP 400 in the delivery layer.
var (
	ErrInvalidID         = errors.New("id must be greater than 0")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrDateInPast        = errors.New("date cannot be in the past")
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func parseTimeOfDay(s string) (time.Time, error) {
	t, err := time.Parse(entity.TimeOfDayLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}
	return t, nil
}

// combine builds the effective instant from a date and a time-of-day, UTC
func combine(date, tod time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// actorFromContext resolves the acting user for the audit trail, nil when
// the call is unauthenticated (internal tooling, tests).
func actorFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
