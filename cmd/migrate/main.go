package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	"github.com/cofoundr/cofoundr-backend/pkg/migrate"
)

const usage = `Manage the cofoundr Postgres schema.

Usage:
  migrate -cmd=<command> [flags]

Commands:
  up         apply every pending migration (default)
  down       roll back the latest migration
  redo       roll back and re-apply the latest migration
  status     print applied and pending migrations
  current    print the applied schema version
  version    migrate up or down to -version (0 rolls everything back)
  create     write a new empty migration named -name into -dir
  validate   check filenames and goose annotations in -dir

With the default -dir the migrations compiled into this binary are used.

Flags:
`

func main() {
	cmd := flag.String("cmd", "up", "migration command")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version YYYYMMDDHHMMSS (for version)")
	timeout := flag.Duration("timeout", 5*time.Minute, "abort the command after this long")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})
	_ = godotenv.Load()

	switch *cmd {
	case "create":
		if *name == "" {
			fail("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fail("failed to create migration: %v", err)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if err := validate(*dir); err != nil {
			fail("migration validation failed: %v", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       cfg.App.LogLevel,
		Env:         cfg.App.Env,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	ctx = logg.WithFields(ctx, map[string]any{
		"cmd": *cmd,
		"dir": *dir,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "redo", "status":
		if err := migrate.Run(ctx, sqlDB, *dir, *cmd); err != nil {
			fail("goose %s failed: %v", *cmd, err)
		}

	case "current":
		current, err := migrate.CurrentVersion(ctx, sqlDB)
		if err != nil {
			fail("read schema version: %v", err)
		}
		fmt.Println(current)

	case "version":
		if *version == "" {
			fail("missing -version for version command")
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *version); err != nil {
			fail("goose version migrate failed: %v", err)
		}

	default:
		flag.Usage()
		fail("unknown -cmd value: %s", *cmd)
	}

	logg.Info(ctx, "migrate complete")
}

func validate(dir string) error {
	if dir == migrate.DefaultDir {
		if err := migrate.ValidateEmbedded(); err != nil {
			return fmt.Errorf("embedded: %w", err)
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil
		}
	}
	return migrate.ValidateDir(dir)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
