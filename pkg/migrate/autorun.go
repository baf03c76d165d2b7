package migrate

import (
	"context"
	"fmt"

	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev
// mode and the feature flag is enabled. Degraded connections are skipped: the
// ephemeral fallback already carries its schema.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, conn *db.Conn) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if conn.Ephemeral() {
		if logg != nil {
			logg.Warn(ctx, "skipping goose migrations on ephemeral storage")
		}
		return nil
	}

	sqlDB, err := conn.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
		logg.Info(ctx, "running Goose migrations (dev auto-run)")
	}

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "Goose migrations completed")
	}
	return nil
}
