package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() drawdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *drawdomain.Event) error {
	e.DrawnAt = e.DrawnAt.UTC()
	return db.WithContext(ctx).Create(e).Error
}

// LockUser issues SELECT ... FOR UPDATE. Dialects without row locks (SQLite)
// drop the locking clause and rely on their database-level write lock.
func (r *repo) LockUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (bool, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Table("users").
		Where("id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
