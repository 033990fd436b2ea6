package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/wealthledger/internal/adapter/http/handler"
	"github.com/iho/wealthledger/internal/adapter/http/middleware"
	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/infrastructure/metrics"
	"github.com/iho/wealthledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional parts are left
// out of the chain when nil.
type RouterConfig struct {
	CashHandler   *handler.CashHandler
	ReportHandler *handler.ReportHandler
	LedgerHandler *handler.LedgerHandler
	HealthHandler *handler.HealthHandler

	// TokenVerifier enables bearer auth. Without it the caller comes from
	// the X-User-ID header.
	TokenVerifier middleware.TokenVerifier
	// TrustRoleHeader lets X-User-Role grant roles when TokenVerifier is nil.
	TrustRoleHeader bool

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	CORSOrigins      []string
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{
				"Accept", "Authorization", "Content-Type",
				middleware.IdempotencyKeyHeader, middleware.UserIDHeader, middleware.UserRoleHeader,
			},
			ExposedHeaders: []string{middleware.IdempotencyReplayHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		} else {
			r.Use(middleware.HeaderIdentity(cfg.TrustRoleHeader))
		}

		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Post("/deposit", cfg.CashHandler.Deposit)
			r.Post("/withdraw", cfg.CashHandler.Withdraw)
			r.Post("/invest", cfg.CashHandler.Invest)
			r.Post("/redeem", cfg.CashHandler.Redeem)
			r.Post("/freeze", cfg.CashHandler.Freeze)
			r.Post("/unfreeze", cfg.CashHandler.Unfreeze)
			r.Get("/reconcile", cfg.LedgerHandler.Reconcile)
		})

		r.Post("/transfers", cfg.CashHandler.Transfer)
		r.Get("/transactions", cfg.CashHandler.ListTransactions)
		r.Get("/balances", cfg.CashHandler.Balances)
		r.Get("/summary", cfg.CashHandler.Summary)

		r.Get("/reports/irr", cfg.ReportHandler.IRR)
		r.Post("/reports/irr/recalculate", cfg.ReportHandler.RecalculateIRR)

		r.With(middleware.RequireRole(domain.RoleAdmin)).Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
