package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/cofoundr/cofoundr-backend/api/routes"
	"github.com/cofoundr/cofoundr-backend/internal/applications"
	"github.com/cofoundr/cofoundr-backend/internal/authevents"
	"github.com/cofoundr/cofoundr-backend/internal/investments"
	"github.com/cofoundr/cofoundr-backend/internal/members"
	"github.com/cofoundr/cofoundr-backend/internal/mrr"
	"github.com/cofoundr/cofoundr-backend/internal/positions"
	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/internal/reviews"
	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	"github.com/cofoundr/cofoundr-backend/internal/subscriptions"
	stripewebhook "github.com/cofoundr/cofoundr-backend/internal/webhooks/stripe"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/db"
	"github.com/cofoundr/cofoundr-backend/pkg/instance"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	"github.com/cofoundr/cofoundr-backend/pkg/metrics"
	"github.com/cofoundr/cofoundr-backend/pkg/migrate"
	"github.com/cofoundr/cofoundr-backend/pkg/redis"
	"github.com/cofoundr/cofoundr-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	deps, err := wire(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(groupCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(ctx, "api server shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func wire(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Dependencies, error) {
	conn := dbClient.DB()

	profileRepo := profiles.NewRepository(conn)
	projectRepo := projects.NewRepository(conn)
	positionRepo := positions.NewRepository(conn)
	memberRepo := members.NewRepository(conn)
	roundRepo := rounds.NewRepository(conn)
	subscriptionRepo := subscriptions.NewRepository(conn)

	profileService, err := profiles.NewService(profileRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	sessionManager, err := session.NewManager(redisClient, profileService, cfg.Session, cfg.JWT)
	if err != nil {
		return routes.Dependencies{}, err
	}
	authEvents, err := authevents.NewService(profileService, sessionManager, logg)
	if err != nil {
		return routes.Dependencies{}, err
	}
	positionSeeder, err := positions.NewSeeder(positionRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	projectService, err := projects.NewService(projectRepo, projects.WithPositionSeeder(positionSeeder, dbClient))
	if err != nil {
		return routes.Dependencies{}, err
	}
	positionService, err := positions.NewService(positionRepo, projectRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	memberService, err := members.NewService(memberRepo, projectRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	applicationService, err := applications.NewService(applications.ServiceParams{
		Repo:      applications.NewRepository(conn),
		Positions: positionRepo,
		Projects:  projectRepo,
		Members:   memberService,
		Tx:        dbClient,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	mrrService, err := mrr.NewService(mrr.ServiceParams{
		Repo:          mrr.NewRepository(conn),
		Members:       memberRepo,
		Projects:      projectRepo,
		Subscriptions: subscriptionRepo,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	reviewService, err := reviews.NewService(reviews.NewRepository(conn), profileRepo, projectRepo, dbClient)
	if err != nil {
		return routes.Dependencies{}, err
	}
	roundService, err := rounds.NewService(rounds.ServiceParams{Repo: roundRepo, Projects: projectRepo})
	if err != nil {
		return routes.Dependencies{}, err
	}
	investmentService, err := investments.NewService(investments.ServiceParams{
		Repo:          investments.NewRepository(conn),
		Rounds:        roundRepo,
		Tx:            dbClient,
		EnforceBounds: cfg.Investments.EnforceBounds,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}

	stripeWebhook, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Subscriptions:     subscriptionRepo,
		MRR:               mrrService,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	guard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Webhooks.IdempotencyTTL, "stripe-webhook")
	if err != nil {
		return routes.Dependencies{}, err
	}
	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		// The webhook answers 400 until a signing secret is configured.
		logg.Warn(context.Background(), "stripe client unavailable: "+err.Error())
		stripeClient = nil
	}

	return routes.Dependencies{
		DB:             dbClient,
		Redis:          redisClient,
		Idempotency:    redisClient,
		Sessions:       sessionManager,
		Gatherer:       prometheus.DefaultGatherer,
		Profiles:       profileService,
		Projects:       projectService,
		Positions:      positionService,
		Applications:   applicationService,
		Members:        memberService,
		MRR:            mrrService,
		Reviews:        reviewService,
		Rounds:         roundService,
		Investments:    investmentService,
		AuthEvents:     authEvents,
		StripeClient:   stripeClient,
		StripeWebhook:  stripeWebhook,
		StripeGuard:    guard,
		WebhookMetrics: metrics.NewStripeWebhookMetrics(prometheus.DefaultRegisterer),
	}, nil
}
