package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/internal/config"
	"github.com/carelinehq/careadmin/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.MigrateOnStart && cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := Run(sqlDB); err != nil {
				return err
			}
		}

		if cfg.SeedOnStart {
			return seed.EnsureReferenceData(conn, node, cfg.DefaultTenantID)
		}
		return nil
	}),
)
