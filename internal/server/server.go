package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	authdomain "github.com/smallbiznis/whateat/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"github.com/smallbiznis/whateat/internal/clock"
	"github.com/smallbiznis/whateat/internal/config"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	historydomain "github.com/smallbiznis/whateat/internal/history/domain"
	"github.com/smallbiznis/whateat/internal/observability"
	obsmiddleware "github.com/smallbiznis/whateat/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/whateat/internal/observability/metrics"
	obstracing "github.com/smallbiznis/whateat/internal/observability/tracing"
	quotadomain "github.com/smallbiznis/whateat/internal/quota/domain"
	"github.com/smallbiznis/whateat/internal/ratelimit"
	"github.com/smallbiznis/whateat/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, prom *telemetry.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(prom.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(telemetry.Handler(gatherer)))

	return r
}

func registerGin(obsCfg observability.Config, prom *telemetry.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, prom, gatherer)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, s *Server) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	drawCfg     *config.DrawConfigHolder
	clock       clock.Clock
	authSvc     authdomain.Service
	catalogSvc  catalogdomain.Service
	drawSvc     drawdomain.Service
	historySvc  historydomain.Service
	quotaSvc    quotadomain.Service
	drawLimiter *ratelimit.DrawLimiter
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DrawCfg     *config.DrawConfigHolder
	Clock       clock.Clock
	AuthSvc     authdomain.Service
	CatalogSvc  catalogdomain.Service
	DrawSvc     drawdomain.Service
	HistorySvc  historydomain.Service
	QuotaSvc    quotadomain.Service
	DrawLimiter *ratelimit.DrawLimiter `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		drawCfg:     p.DrawCfg,
		clock:       p.Clock,
		authSvc:     p.AuthSvc,
		catalogSvc:  p.CatalogSvc,
		drawSvc:     p.DrawSvc,
		historySvc:  p.HistorySvc,
		quotaSvc:    p.QuotaSvc,
		drawLimiter: p.DrawLimiter,
		obsMetrics:  p.ObsMetrics,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Catalog --------
	api.GET("/foods", s.ListFoods)
	api.GET("/foods/categories", s.ListFoodCategories)
	api.GET("/foods/:id", s.GetFoodByID)

	// -------- Draw --------
	draw := api.Group("/draw", s.AuthRequired())
	{
		draw.POST("", s.DrawRateLimit(), s.Draw)
		draw.GET("/records", s.ListDrawRecords)
		draw.GET("/quota", s.GetDrawQuota)
	}

	// -------- User --------
	api.GET("/user/info", s.AuthRequired(), s.GetUserInfo)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
