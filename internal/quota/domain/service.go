package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// Remaining is max(0, limit - draws on the day containing asOf).
	Remaining(ctx context.Context, userID snowflake.ID, asOf time.Time) (int, error)
	// RemainingTx counts on the caller's transaction.
	RemainingTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID, asOf time.Time) (int, error)
	Status(ctx context.Context, userID snowflake.ID, asOf time.Time) (*Status, error)
}

type Repository interface {
	CountBetween(ctx context.Context, db *gorm.DB, userID snowflake.ID, start, end time.Time) (int64, error)
}

type Status struct {
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	Day       string    `json:"day"`
	ResetsAt  time.Time `json:"resets_at"`
}

// DayWindow returns [midnight, next midnight) of asOf's calendar day in loc,
// expressed in UTC.
func DayWindow(asOf time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := asOf.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// RemainingFrom clamps limit - used at zero.
func RemainingFrom(limit int, used int64) int {
	remaining := int64(limit) - used
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}
