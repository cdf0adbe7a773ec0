package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	historydomain "github.com/smallbiznis/whateat/internal/history/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() historydomain.Repository {
	return &repo{}
}

func (r *repo) ListRecent(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]drawdomain.Event, error) {
	var events []drawdomain.Event
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, food_id, food_snapshot, drawn_at
		 FROM draw_events
		 WHERE user_id = ?
		 ORDER BY drawn_at DESC, id DESC
		 LIMIT ?`,
		userID,
		limit,
	).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
