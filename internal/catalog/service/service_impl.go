package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/whateat/internal/cache"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Cfg  config.Config
	Repo catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  catalogdomain.Repository
	cache *cache.EligibleSetCache
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		cache: cache.NewEligibleSetCache(p.Cfg.CatalogCacheTTL),
	}
}

func (s *Service) Eligible(ctx context.Context, filter catalogdomain.Filter) ([]catalogdomain.Food, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter = filter.Normalize()

	if foods, ok := s.cache.Get(filter); ok {
		return foods, nil
	}

	foods, err := s.repo.FindEligible(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("query eligible foods: %w", err)
	}
	s.cache.Set(filter, foods)

	s.log.Debug("eligible set loaded",
		zap.String("filter", filter.Key()),
		zap.Int("size", len(foods)),
	)
	return foods, nil
}

func (s *Service) List(ctx context.Context, filter catalogdomain.Filter) ([]catalogdomain.Response, error) {
	foods, err := s.Eligible(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]catalogdomain.Response, 0, len(foods))
	for i := range foods {
		resp = append(resp, foods[i].Response())
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*catalogdomain.Response, error) {
	foodID, err := catalogdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	food, err := s.repo.FindByID(ctx, s.db, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, catalogdomain.ErrNotFound
	}

	resp := food.Response()
	return &resp, nil
}

func (s *Service) Categories(ctx context.Context) ([]catalogdomain.Category, error) {
	return s.repo.ListCategories(ctx, s.db)
}
