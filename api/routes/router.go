package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cofoundr/cofoundr-backend/api/controllers"
	webhookcontrollers "github.com/cofoundr/cofoundr-backend/api/controllers/webhooks"
	"github.com/cofoundr/cofoundr-backend/api/middleware"
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
	stripewebhook "github.com/cofoundr/cofoundr-backend/internal/webhooks/stripe"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	"github.com/cofoundr/cofoundr-backend/pkg/config"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
	"github.com/cofoundr/cofoundr-backend/pkg/metrics"
	"github.com/cofoundr/cofoundr-backend/pkg/redis"
	"github.com/cofoundr/cofoundr-backend/pkg/stripe"
)

// SessionManager loads request sessions and serves the session endpoints.
type SessionManager interface {
	middleware.SessionLoader
	Refresh(ctx context.Context, userID uuid.UUID) (session.Context, error)
	Teardown(ctx context.Context, userID uuid.UUID, tokenID string) error
}

// Dependencies carries everything the HTTP surface is wired to.
type Dependencies struct {
	DB          controllers.Pinger
	Redis       *redis.Client
	Idempotency redis.IdempotencyStore
	Sessions    SessionManager
	Gatherer    prometheus.Gatherer

	Profiles     profiles.Service
	Projects     projects.Service
	Positions    positions.Service
	Applications applications.Service
	Members      members.Service
	MRR          mrr.Service
	Reviews      reviews.Service
	Rounds       rounds.Service
	Investments  investments.Service
	AuthEvents   *authevents.Service

	StripeClient   *stripe.Client
	StripeWebhook  *stripewebhook.Service
	StripeGuard    *stripewebhook.IdempotencyGuard
	WebhookMetrics *metrics.WebhookMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{"database": deps.DB}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	standard := middleware.Idempotency(deps.Idempotency, middleware.DefaultIdempotencyTTL, logg)
	critical := middleware.Idempotency(deps.Idempotency, middleware.CriticalIdempotencyTTL, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/stripe", webhookcontrollers.StripeWebhook(deps.StripeWebhook, deps.StripeClient, deps.StripeGuard, deps.WebhookMetrics, logg))
		})
		r.With(middleware.HookAuth(cfg.AuthHook, logg)).Post("/auth/events", controllers.AuthEvents(deps.AuthEvents, logg))

		// public reads
		r.Get("/projects", controllers.ProjectList(deps.Projects, logg))
		r.Get("/projects/{id}", controllers.ProjectGet(deps.Projects, logg))
		r.Get("/projects/{id}/positions", controllers.PositionListByProject(deps.Positions, logg))
		r.Get("/positions", controllers.PositionListOpen(deps.Positions, logg))
		r.Get("/positions/{id}", controllers.PositionGet(deps.Positions, logg))
		r.Get("/profiles/{id}", controllers.ProfileGet(deps.Profiles, logg))
		r.Get("/profiles/{id}/reviews", controllers.ProfileReviews(deps.Reviews, logg))
		r.Get("/profiles/{id}/investor-reviews", controllers.ProfileInvestorReviews(deps.Reviews, logg))
		r.Get("/profiles/{id}/investor-rating", controllers.ProfileInvestorRating(deps.Reviews, logg))
		r.Get("/rounds", controllers.RoundList(deps.Rounds, logg))
		r.Get("/rounds/open", controllers.RoundListOpen(deps.Rounds, logg))
		r.Get("/rounds/{id}", controllers.RoundGet(deps.Rounds, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Route("/session", func(r chi.Router) {
				r.Get("/", controllers.SessionCurrent(logg))
				r.Post("/refresh", controllers.SessionRefresh(deps.Sessions, logg))
				r.Delete("/", controllers.SessionLogout(deps.Sessions, logg))
			})

			r.Route("/profiles/me", func(r chi.Router) {
				r.Get("/", controllers.ProfileMe(deps.Profiles, logg))
				r.Patch("/", controllers.ProfileUpdateMe(deps.Profiles, logg))
				r.Get("/completion", controllers.ProfileCompletion(deps.Profiles, logg))
				r.Get("/skills", controllers.ProfileSkills(deps.Profiles, logg))
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/projects", controllers.ProjectListMine(deps.Projects, logg))
				r.Get("/applications", controllers.ApplicationListMine(deps.Applications, logg))
				r.Get("/memberships", controllers.MemberListMine(deps.Members, logg))
				r.Get("/mrr", controllers.MRRListMine(deps.MRR, logg))
				r.Get("/mrr/dashboard", controllers.MRRDashboard(deps.MRR, logg))
				r.Get("/portfolio", controllers.Portfolio(deps.Investments, logg))
			})

			r.Post("/projects", controllers.ProjectCreate(deps.Projects, logg))
			r.Patch("/projects/{id}", controllers.ProjectUpdate(deps.Projects, logg))
			r.Delete("/projects/{id}", controllers.ProjectDelete(deps.Projects, logg))
			r.Post("/projects/{id}/positions", controllers.PositionCreate(deps.Positions, logg))
			r.Get("/projects/{id}/applications", controllers.ApplicationListByProject(deps.Applications, logg))
			r.Get("/projects/{id}/members", controllers.MemberListByProject(deps.Members, logg))
			r.Post("/projects/{id}/members", controllers.MemberAdd(deps.Members, logg))
			r.Delete("/projects/{id}/members/{userId}", controllers.MemberRemove(deps.Members, logg))
			r.Get("/projects/{id}/mrr", controllers.MRRListByProject(deps.MRR, logg))
			r.Post("/projects/{id}/mrr", controllers.MRRAddRecord(deps.MRR, logg))
			r.Post("/projects/{id}/rounds", controllers.RoundCreate(deps.Rounds, logg))

			r.Patch("/positions/{id}", controllers.PositionUpdate(deps.Positions, logg))
			r.Delete("/positions/{id}", controllers.PositionDelete(deps.Positions, logg))
			r.With(standard).Post("/positions/{id}/applications", controllers.ApplicationCreate(deps.Applications, logg))
			r.Get("/positions/{id}/applications", controllers.ApplicationListByPosition(deps.Applications, logg))
			r.Patch("/applications/{id}/status", controllers.ApplicationUpdateStatus(deps.Applications, logg))

			r.With(standard).Post("/reviews", controllers.ReviewCreate(deps.Reviews, logg))
			r.With(standard).Post("/investor-reviews", controllers.InvestorReviewCreate(deps.Reviews, logg))

			r.Patch("/rounds/{id}", controllers.RoundUpdate(deps.Rounds, logg))
			r.With(critical).Post("/rounds/{id}/investments", controllers.InvestmentCreate(deps.Investments, logg))
			r.Get("/investments", controllers.InvestmentList(deps.Investments, logg))
			r.Patch("/investments/{id}/status", controllers.InvestmentUpdateStatus(deps.Investments, logg))
		})
	})

	return r
}
