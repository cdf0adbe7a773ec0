package server

import (
	"errors"
	"strconv"
	"strings"

	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
)

type filterQuery struct {
	MealType string `form:"meal_type"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Category string `form:"category"`
}

// filter converts query parameters into a catalog filter. Empty values are
// treated as unset.
func (q filterQuery) filter() (catalogdomain.Filter, error) {
	var filter catalogdomain.Filter

	meal, err := parseOptionalInt16(q.MealType)
	if err != nil {
		return filter, newValidationError("meal_type", "invalid_meal_type", "meal_type must be an integer")
	}
	if meal != nil {
		period := catalogdomain.MealPeriod(*meal)
		filter.MealPeriod = &period
	}

	if filter.MinPriceCents, err = parseOptionalPrice(q.MinPrice); err != nil {
		return filter, priceValidationError("min_price", err)
	}
	if filter.MaxPriceCents, err = parseOptionalPrice(q.MaxPrice); err != nil {
		return filter, priceValidationError("max_price", err)
	}

	if category := strings.TrimSpace(q.Category); category != "" {
		filter.Category = &category
	}

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseOptionalInt16(value string) (*int16, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 16)
	if err != nil {
		return nil, err
	}
	v := int16(parsed)
	return &v, nil
}

func parseOptionalPrice(value string) (*int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	cents, err := catalogdomain.ParsePrice(trimmed)
	if err != nil {
		return nil, err
	}
	return &cents, nil
}

func priceValidationError(field string, err error) error {
	if errors.Is(err, catalogdomain.ErrNegativePrice) {
		return newValidationError(field, "negative_price", field+" cannot be negative")
	}
	return newValidationError(field, "invalid_price", field+" must be a decimal with at most two fraction digits")
}
