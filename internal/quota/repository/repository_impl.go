package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	quotadomain "github.com/smallbiznis/whateat/internal/quota/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() quotadomain.Repository {
	return &repo{}
}

// CountBetween counts draws with start <= drawn_at < end. Served by the
// (user_id, drawn_at) index.
func (r *repo) CountBetween(ctx context.Context, db *gorm.DB, userID snowflake.ID, start, end time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM draw_events
		 WHERE user_id = ? AND drawn_at >= ? AND drawn_at < ?`,
		userID,
		start.UTC(),
		end.UTC(),
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
