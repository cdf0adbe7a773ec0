package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Eligible returns every item matching filter, unpaginated.
	Eligible(ctx context.Context, filter Filter) ([]Food, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	Categories(ctx context.Context) ([]Category, error)
}

var (
	ErrInvalidMealType = errors.New("invalid_meal_type")
	ErrNegativePrice   = errors.New("negative_price")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
