package migrate

import (
	"context"
	"fmt"

	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

// MaybeRunDev applies the embedded migrations when the api or cron-worker
// boots in dev with COFOUNDR_AUTO_MIGRATE=true. Other environments run
// cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !shouldAutoMigrate(cfg) {
		return nil
	}
	if client == nil {
		return fmt.Errorf("db client is required for auto-migrate")
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	before, err := CurrentVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"from_version":   before,
		"migrations_dir": DefaultDir,
	})
	logg.Info(ctx, "migrate.autorun.start")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	after, err := CurrentVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "to_version", after), "migrate.autorun.complete")
	return nil
}

func shouldAutoMigrate(cfg *config.Config) bool {
	return cfg != nil && cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
}
