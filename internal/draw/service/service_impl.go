package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/internal/clock"
	"github.com/smallbiznis/whateat/internal/config"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	obslogger "github.com/smallbiznis/whateat/internal/observability/logger"
	"github.com/smallbiznis/whateat/internal/observability/metrics"
	quotadomain "github.com/smallbiznis/whateat/internal/quota/domain"
	"github.com/smallbiznis/whateat/internal/selector"
	"github.com/smallbiznis/whateat/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const lockKeyFormat = "draw:lock:user:%d"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	DrawCfg  *config.DrawConfigHolder
	Repo     drawdomain.Repository
	Quota    quotadomain.Service
	Selector *selector.Selector
	Locker   drawdomain.Locker
	Metrics  *metrics.Metrics   `optional:"true"`
	Prom     *telemetry.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	drawCfg  *config.DrawConfigHolder
	repo     drawdomain.Repository
	quota    quotadomain.Service
	selector *selector.Selector
	locker   drawdomain.Locker
	metrics  *metrics.Metrics
	prom     *telemetry.Metrics
}

func New(p Params) drawdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("draw.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		drawCfg:  p.DrawCfg,
		repo:     p.Repo,
		quota:    p.Quota,
		selector: p.Selector,
		locker:   p.Locker,
		metrics:  p.Metrics,
		prom:     p.Prom,
	}
}

func (s *Service) Draw(ctx context.Context, userID snowflake.ID, filter catalogdomain.Filter) (*drawdomain.Result, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter = filter.Normalize()

	unlock, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result, err := s.draw(ctx, userID, filter)
	if err != nil {
		s.metrics.RecordDraw(ctx, "error")
		return nil, err
	}

	s.metrics.RecordDraw(ctx, string(result.Outcome))
	s.prom.ObserveDraw(string(result.Outcome))
	obslogger.WithContext(ctx, s.log).Info("draw finished",
		zap.String("outcome", string(result.Outcome)),
		zap.Int("remaining", result.RemainingQuota),
	)
	return result, nil
}

func (s *Service) draw(ctx context.Context, userID snowflake.ID, filter catalogdomain.Filter) (*drawdomain.Result, error) {
	now := s.clock.Now()

	remaining, err := s.quota.Remaining(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if remaining <= 0 {
		return drawdomain.NewResult(drawdomain.OutcomeQuotaExhausted, 0), nil
	}

	food, err := s.selector.PickRandom(ctx, filter)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return drawdomain.NewResult(drawdomain.OutcomeNoEligibleItem, remaining), nil
	}

	event, err := s.commit(ctx, userID, food, now)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return drawdomain.NewResult(drawdomain.OutcomeQuotaExhausted, 0), nil
	}

	after, err := s.quota.Remaining(ctx, userID, now)
	if err != nil {
		// The event is committed; report the value implied by the in-transaction count.
		s.log.Warn("recount after draw failed", zap.Error(err))
		after = remaining - 1
	}

	result := drawdomain.NewResult(drawdomain.OutcomeSuccess, after)
	result.Event = event
	result.Food = food
	return result, nil
}

// commit re-checks capacity under the user row lock and appends the event.
// A nil event means the quota was consumed between the first check and the lock.
func (s *Service) commit(ctx context.Context, userID snowflake.ID, food *catalogdomain.Food, now time.Time) (*drawdomain.Event, error) {
	var event *drawdomain.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.LockUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		if !found {
			return drawdomain.ErrUnknownUser
		}

		left, err := s.quota.RemainingTx(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if left <= 0 {
			return nil
		}

		candidate := &drawdomain.Event{
			ID:           s.genID.Generate(),
			UserID:       userID,
			FoodID:       food.ID,
			FoodSnapshot: datatypes.NewJSONType(food.Snapshot()),
			DrawnAt:      now.UTC(),
		}
		if err := s.repo.Insert(ctx, tx, candidate); err != nil {
			return fmt.Errorf("insert draw event: %w", err)
		}
		event = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) lock(ctx context.Context, userID snowflake.ID) (func(), error) {
	wait := s.drawCfg.Get().LockWait
	lockCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	started := time.Now()
	unlock, err := s.locker.Lock(lockCtx, fmt.Sprintf(lockKeyFormat, userID))
	s.metrics.RecordLockWait(ctx, lockBackend(s.locker), time.Since(started))
	if err == nil {
		return unlock, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		obslogger.WithContext(ctx, s.log).Warn("draw lock wait exceeded", zap.Duration("wait", wait))
		return nil, drawdomain.ErrDrawInProgress
	}
	return nil, fmt.Errorf("acquire draw lock: %w", err)
}

func lockBackend(l drawdomain.Locker) string {
	if named, ok := l.(interface{ Backend() string }); ok {
		return named.Backend()
	}
	return "custom"
}
