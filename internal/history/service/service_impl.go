package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/whateat/internal/config"
	historydomain "github.com/smallbiznis/whateat/internal/history/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	DrawCfg *config.DrawConfigHolder
	Repo    historydomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	drawCfg *config.DrawConfigHolder
	repo    historydomain.Repository
}

func New(p Params) historydomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("history.service"),
		drawCfg: p.DrawCfg,
		repo:    p.Repo,
	}
}

func (s *Service) RecentDraws(ctx context.Context, userID snowflake.ID) ([]historydomain.Entry, error) {
	limit := s.drawCfg.Get().HistoryLimit
	events, err := s.repo.ListRecent(ctx, s.db, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list draw events: %w", err)
	}

	entries := make([]historydomain.Entry, 0, len(events))
	for _, event := range events {
		entries = append(entries, historydomain.Entry{
			EventID: event.ID,
			Food:    event.FoodSnapshot.Data(),
			DrawnAt: event.DrawnAt.UTC(),
		})
	}
	return entries, nil
}
