package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]int64{
		"38":     3800,
		"38.5":   3850,
		"38.05":  3805,
		".99":    99,
		"0":      0,
		" 12.00": 1200,
	}
	for in, want := range cases {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "1.234", "1..2", "1e3", "."} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}

	_, err := ParsePrice("-5")
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "38.00", FormatPrice(3800))
	assert.Equal(t, "0.05", FormatPrice(5))
	assert.Equal(t, "-1.50", FormatPrice(-150))
}

func TestFilterKeyNormalizes(t *testing.T) {
	lunch := MealLunch
	lo := int64(100)
	padded := "  Chinese "
	plain := "Chinese"
	blank := " "

	assert.Equal(t, "*", Filter{}.Key())
	assert.Equal(t, "*", Filter{Category: &blank}.Key())
	assert.Equal(t,
		Filter{Category: &plain}.Key(),
		Filter{Category: &padded}.Key(),
	)
	assert.Equal(t, "m=2|lo=100|c=Chinese", Filter{MealPeriod: &lunch, MinPriceCents: &lo, Category: &plain}.Key())
}

func TestMealPeriodValid(t *testing.T) {
	assert.False(t, MealPeriod(0).Valid())
	assert.True(t, MealLateNight.Valid())
	assert.False(t, MealPeriod(5).Valid())
	assert.Equal(t, "夜宵", MealLateNight.Label())
}
