package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/whateat/internal/auth"
	"github.com/smallbiznis/whateat/internal/catalog"
	"github.com/smallbiznis/whateat/internal/clock"
	"github.com/smallbiznis/whateat/internal/config"
	"github.com/smallbiznis/whateat/internal/draw"
	"github.com/smallbiznis/whateat/internal/history"
	"github.com/smallbiznis/whateat/internal/migration"
	"github.com/smallbiznis/whateat/internal/observability"
	"github.com/smallbiznis/whateat/internal/quota"
	"github.com/smallbiznis/whateat/internal/ratelimit"
	"github.com/smallbiznis/whateat/internal/selector"
	"github.com/smallbiznis/whateat/internal/server"
	"github.com/smallbiznis/whateat/pkg/db"
	"github.com/smallbiznis/whateat/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		telemetry.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		ratelimit.Module,

		// Domains
		auth.Module,
		catalog.Module,
		quota.Module,
		selector.Module,
		draw.Module,
		history.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
