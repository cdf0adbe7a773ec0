package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/whateat/internal/config"
	"github.com/smallbiznis/whateat/internal/seed"
	"github.com/smallbiznis/whateat/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, dbCfg db.Config, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
		if dbCfg.Type == db.TypePostgres {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := AutoMigrate(conn); err != nil {
			return err
		}

		if !cfg.SeedSampleData || cfg.IsProduction() {
			return nil
		}
		inserted, err := seed.EnsureSampleFoods(conn, node)
		if err != nil {
			return err
		}
		user, err := seed.EnsureDemoUser(conn, node)
		if err != nil {
			return err
		}
		log.Info("sample data ready",
			zap.Int("foods_inserted", inserted),
			zap.String("demo_user_id", user.ID.String()),
		)
		return nil
	}),
)
