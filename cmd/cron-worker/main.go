package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cofoundr/cofoundr-backend/internal/cron"
	"github.com/cofoundr/cofoundr-backend/internal/members"
	"github.com/cofoundr/cofoundr-backend/internal/mrr"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	"github.com/cofoundr/cofoundr-backend/internal/subscriptions"
	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/instance"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	"github.com/cofoundr/cofoundr-backend/pkg/metrics"
	"github.com/cofoundr/cofoundr-backend/pkg/migrate"
	"github.com/cofoundr/cofoundr-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	only := flag.String("jobs", "", "comma-separated job names to run (default: mrr-snapshot,round-expiry)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       cfg.App.LogLevel,
		Env:         cfg.App.Env,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	lock, err := cron.NewRedisLock(redisClient, cron.LockKey(cfg.App.Env), cron.LockTTLFor(cfg.Cron.Interval))
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry, err := buildRegistry(logg, dbClient)
	if err == nil {
		registry, err = registry.Select(strings.Split(*only, ","))
	}
	if err != nil {
		logg.Error(context.Background(), "failed to register cron jobs", err)
		os.Exit(1)
	}
	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer, registry.Names()...)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"serviceKind": cfg.Service.Kind,
		"instance":    instance.GetID(),
		"jobs":        registry.Names(),
	})
	if *once {
		if err := service.RunOnce(ctx); err != nil {
			logg.Error(ctx, "cron cycle failed", err)
			os.Exit(1)
		}
		return
	}

	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func buildRegistry(logg *logger.Logger, dbClient *db.Client) (*cron.Registry, error) {
	conn := dbClient.DB()
	projectRepo := projects.NewRepository(conn)
	subscriptionRepo := subscriptions.NewRepository(conn)

	mrrService, err := mrr.NewService(mrr.ServiceParams{
		Repo:          mrr.NewRepository(conn),
		Members:       members.NewRepository(conn),
		Projects:      projectRepo,
		Subscriptions: subscriptionRepo,
	})
	if err != nil {
		return nil, err
	}
	roundService, err := rounds.NewService(rounds.ServiceParams{
		Repo:     rounds.NewRepository(conn),
		Projects: projectRepo,
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := cron.NewMRRSnapshotJob(cron.MRRSnapshotJobParams{
		Logger:        logg,
		DB:            dbClient,
		Subscriptions: subscriptionRepo,
		MRR:           mrrService,
	})
	if err != nil {
		return nil, err
	}
	expiry, err := cron.NewRoundExpiryJob(logg, roundService)
	if err != nil {
		return nil, err
	}
	return cron.NewRegistry(snapshot, expiry)
}
