package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindowUsesLocalMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// 2025-03-01 17:30 UTC is 2025-03-02 01:30 in Shanghai.
	start, end := DayWindow(time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 2, 16, 0, 0, 0, time.UTC), end)
}

func TestDayWindowAcrossDSTIsNotTwentyFourHours(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start, end := DayWindow(time.Date(2025, 3, 9, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestDayWindowDefaultsToUTC(t *testing.T) {
	start, end := DayWindow(time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC), nil)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestRemainingFrom(t *testing.T) {
	assert.Equal(t, 3, RemainingFrom(3, 0))
	assert.Equal(t, 1, RemainingFrom(3, 2))
	assert.Equal(t, 0, RemainingFrom(3, 3))
	assert.Equal(t, 0, RemainingFrom(3, 7))
	assert.Equal(t, 0, RemainingFrom(0, 0))
}
