package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, event *Event) error
	// LockUser takes a row lock on the user for the rest of the transaction.
	// It reports false when the user does not exist.
	LockUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (bool, error)
}

// Locker serializes draws per key. Lock blocks until the key is free or ctx
// is done; the returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
