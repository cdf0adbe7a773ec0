package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/whateat/internal/config"
	quotadomain "github.com/smallbiznis/whateat/internal/quota/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	DrawCfg *config.DrawConfigHolder
	Repo    quotadomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	drawCfg *config.DrawConfigHolder
	repo    quotadomain.Repository
}

func New(p Params) quotadomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("quota.service"),
		drawCfg: p.DrawCfg,
		repo:    p.Repo,
	}
}

func (s *Service) Remaining(ctx context.Context, userID snowflake.ID, asOf time.Time) (int, error) {
	return s.RemainingTx(ctx, s.db, userID, asOf)
}

func (s *Service) RemainingTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID, asOf time.Time) (int, error) {
	cfg := s.drawCfg.Get()
	used, err := s.countOnDay(ctx, tx, userID, asOf, cfg)
	if err != nil {
		return 0, err
	}
	return quotadomain.RemainingFrom(cfg.DailyFreeLimit, used), nil
}

func (s *Service) Status(ctx context.Context, userID snowflake.ID, asOf time.Time) (*quotadomain.Status, error) {
	cfg := s.drawCfg.Get()
	used, err := s.countOnDay(ctx, s.db, userID, asOf, cfg)
	if err != nil {
		return nil, err
	}

	_, end := quotadomain.DayWindow(asOf, cfg.Location())
	return &quotadomain.Status{
		Limit:     cfg.DailyFreeLimit,
		Used:      int(used),
		Remaining: quotadomain.RemainingFrom(cfg.DailyFreeLimit, used),
		Day:       asOf.In(cfg.Location()).Format(time.DateOnly),
		ResetsAt:  end,
	}, nil
}

func (s *Service) countOnDay(ctx context.Context, db *gorm.DB, userID snowflake.ID, asOf time.Time, cfg config.DrawConfig) (int64, error) {
	start, end := quotadomain.DayWindow(asOf, cfg.Location())
	used, err := s.repo.CountBetween(ctx, db, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("count draws: %w", err)
	}
	return used, nil
}
