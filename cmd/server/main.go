package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/wealthledger/internal/adapter/http"
	"github.com/iho/wealthledger/internal/adapter/http/handler"
	"github.com/iho/wealthledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/wealthledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/wealthledger/internal/adapter/repository/redis"
	"github.com/iho/wealthledger/internal/infrastructure/auth"
	"github.com/iho/wealthledger/internal/infrastructure/config"
	"github.com/iho/wealthledger/internal/infrastructure/eventpublisher"
	"github.com/iho/wealthledger/internal/infrastructure/logger"
	"github.com/iho/wealthledger/internal/infrastructure/metrics"
	"github.com/iho/wealthledger/internal/infrastructure/postgres"
	"github.com/iho/wealthledger/internal/infrastructure/redis"
	"github.com/iho/wealthledger/internal/usecase"
)

const (
	rateLimiterSweep = 10 * time.Minute
	outboxRetention  = 7 * 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseAutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	m := metrics.New()

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewTradingAccountRepository(pool)
	cashTxRepo := postgresRepo.NewCashTransactionRepository(pool)
	portfolioRepo := postgresRepo.NewPortfolioRepository(pool)
	retrier := postgresRepo.NewRetrier(cfg.LedgerMaxRetries, log, postgresRepo.WithRetryHook(m.LedgerRetry))
	idGen := postgresRepo.NewULIDGenerator()

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewNullOutboxRepository()
	if cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewOutboxRepository(pool)
	}

	var (
		irrCache         usecase.IRRCache
		idempotencyStore usecase.IdempotencyStore
		redisPing        handler.Pinger
	)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, DialTimeout: 5 * time.Second})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		irrCache = redisRepo.NewIRRCache(redisRepo.NewCache(redisClient))
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		redisPing = handler.PingFunc(redis.Ping(redisClient))
	} else {
		log.Warn().Msg("REDIS_URL is empty: IRR caching and idempotency keys are disabled")
	}

	ledger := usecase.NewCashLedgerUseCase(
		txManager, accountRepo, cashTxRepo, outboxRepo, retrier, idGen, m, log,
		cashLedgerConfig(cfg),
	)

	analyzer := usecase.NewIRRAnalyzerUseCase(portfolioRepo, portfolioRepo, irrCache, m, log, irrAnalyzerConfig(cfg))

	reconciliation := usecase.NewReconciliationUseCase(accountRepo, cashTxRepo, log)

	routerCfg := httpAdapter.RouterConfig{
		CashHandler:      handler.NewCashHandler(ledger),
		ReportHandler:    handler.NewReportHandler(analyzer),
		LedgerHandler:    handler.NewLedgerHandler(reconciliation),
		HealthHandler:    handler.NewHealthHandler(pool, redisPing),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		CORSOrigins:      cfg.CORSAllowedOrigins,
		Logger:           log,
	}
	if cfg.AuthEnabled {
		routerCfg.TokenVerifier = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else if cfg.AuthTrustRoleHeader {
		routerCfg.TrustRoleHeader = true
		log.Warn().Msg("AUTH_TRUST_ROLE_HEADER is set: X-User-Role is trusted from every caller")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits.Inc)
		routerCfg.RateLimiter = limiter
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", cfg.AuthEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewLogPublisher(log),
			Logger:     log,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  outboxRetention,
			OnResult:   m.OutboxEvent,
		})
		g.Go(func() error {
			if err := publisher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(rateLimiterSweep)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					limiter.CleanupLimiters(rateLimiterSweep)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func cashLedgerConfig(cfg *config.Config) usecase.CashLedgerConfig {
	return usecase.CashLedgerConfig{
		DefaultCurrency: cfg.LedgerDefaultCurrency,
		TxTimeout:       cfg.LedgerTxTimeout,
	}
}

func irrAnalyzerConfig(cfg *config.Config) usecase.IRRAnalyzerConfig {
	irrCfg := usecase.DefaultIRRAnalyzerConfig()
	irrCfg.Thresholds = cfg.RiskThresholds()
	irrCfg.DiscountRate = cfg.IRRDiscountRate
	irrCfg.CacheTTL = cfg.IRRCacheTTL
	irrCfg.Parallelism = cfg.IRRParallelism
	return irrCfg
}
