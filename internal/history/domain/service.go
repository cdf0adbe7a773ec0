package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	"gorm.io/gorm"
)

type Service interface {
	// RecentDraws returns the newest draws first, capped by the configured
	// history limit.
	RecentDraws(ctx context.Context, userID snowflake.ID) ([]Entry, error)
}

type Repository interface {
	ListRecent(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]drawdomain.Event, error)
}

type Entry struct {
	EventID snowflake.ID
	Food    catalogdomain.Snapshot
	DrawnAt time.Time
}

type Response struct {
	ID      string                 `json:"id"`
	Food    catalogdomain.Response `json:"food"`
	DrawnAt time.Time              `json:"drawn_at"`
}

func (e Entry) Response() Response {
	return Response{
		ID:      e.EventID.String(),
		Food:    e.Food.Response(),
		DrawnAt: e.DrawnAt,
	}
}
