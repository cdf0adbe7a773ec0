package domain

import (
	"strconv"
	"strings"
)

// Filter narrows the eligible set. Nil fields are unset; the zero value
// matches every item.
type Filter struct {
	MealPeriod    *MealPeriod
	MinPriceCents *int64
	MaxPriceCents *int64
	Category      *string
}

// Validate rejects malformed bounds. An inverted price range is accepted and
// simply matches nothing.
func (f Filter) Validate() error {
	if f.MealPeriod != nil && !f.MealPeriod.Valid() {
		return ErrInvalidMealType
	}
	if f.MinPriceCents != nil && *f.MinPriceCents < 0 {
		return ErrNegativePrice
	}
	if f.MaxPriceCents != nil && *f.MaxPriceCents < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Normalize trims the category and treats a blank one as unset.
func (f Filter) Normalize() Filter {
	if f.Category != nil {
		category := strings.TrimSpace(*f.Category)
		if category == "" {
			f.Category = nil
		} else {
			f.Category = &category
		}
	}
	return f
}

// HasPriceBound reports whether unpriced items are excluded.
func (f Filter) HasPriceBound() bool {
	return f.MinPriceCents != nil || f.MaxPriceCents != nil
}

// Key is a stable cache key for the normalized filter.
func (f Filter) Key() string {
	f = f.Normalize()
	parts := make([]string, 0, 4)
	if f.MealPeriod != nil {
		parts = append(parts, "m="+strconv.Itoa(int(*f.MealPeriod)))
	}
	if f.MinPriceCents != nil {
		parts = append(parts, "lo="+strconv.FormatInt(*f.MinPriceCents, 10))
	}
	if f.MaxPriceCents != nil {
		parts = append(parts, "hi="+strconv.FormatInt(*f.MaxPriceCents, 10))
	}
	if f.Category != nil {
		parts = append(parts, "c="+*f.Category)
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, "|")
}
