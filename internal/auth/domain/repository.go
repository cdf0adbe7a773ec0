package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	Create(ctx context.Context, user *User) error
}
