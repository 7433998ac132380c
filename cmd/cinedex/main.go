package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/cinedex/internal/db/redis"
	"github.com/kailas-cloud/cinedex/internal/domain"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
	"github.com/kailas-cloud/cinedex/internal/repository/autofillcache"
	budgetrepo "github.com/kailas-cloud/cinedex/internal/repository/budget"
	contentrepo "github.com/kailas-cloud/cinedex/internal/repository/content"
	chiTransport "github.com/kailas-cloud/cinedex/internal/transport/chi"
	openaiAutofill "github.com/kailas-cloud/cinedex/internal/transport/openai"
	autofilluc "github.com/kailas-cloud/cinedex/internal/usecase/autofill"
	cataloguc "github.com/kailas-cloud/cinedex/internal/usecase/catalog"
	contentuc "github.com/kailas-cloud/cinedex/internal/usecase/content"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
	usageuc "github.com/kailas-cloud/cinedex/internal/usecase/usage"
	"github.com/kailas-cloud/cinedex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env,
		logpkg.WithLevel(cfg.Logging.Level),
		logpkg.WithFields(zap.String("service", "cinedex")),
	)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinedex API server", append(version.Fields(),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)...)

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")
	if len(cfg.Auth.APIKeys) == 0 {
		logger.Warn("No admin API keys configured, admin routes are unauthenticated")
	}

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterAutofillMetrics()

	contentRepo := contentrepo.New(store, cfg.Storage.KeyPrefix)

	contentSvc := contentuc.New(contentRepo)
	searchSvc := searchuc.New(contentRepo).WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	catalogSvc := cataloguc.New(contentRepo)

	// Pass nil interfaces (not typed nil pointers) when autofill is off.
	var autofiller domain.Autofiller
	var autofillHealth healthuc.AutofillChecker
	var budgetReader usageuc.BudgetReader
	if cfg.Autofill.Enabled() {
		af, budget := buildAutofiller(ctx, cfg, store, logger)
		autofiller, autofillHealth = af, af
		if budget != nil {
			budgetReader = budget
		}
		logger.Info("Autofill enabled",
			zap.String("provider", cfg.Autofill.Provider),
			zap.String("model", cfg.Autofill.Model),
		)
	} else {
		logger.Info("Autofill disabled: no API key configured")
	}
	autofillSvc := autofilluc.New(autofiller)
	usageSvc := usageuc.New(budgetReader, cfg.Autofill.Provider)
	healthSvc := healthuc.New(store, autofillHealth)

	server := chiTransport.NewServer(contentSvc, searchSvc, catalogSvc, autofillSvc, usageSvc, healthSvc).
		WithAutofillRateLimit(cfg.Autofill.RateLimit.PerMinute, cfg.Autofill.RateLimit.Burst)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newStore picks the storage backend. Valkey and Redis share the rueidis client.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverValkey, config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// buildAutofiller assembles the decorator chain: OpenAI -> Cached -> Instrumented.
// Cache hits are free, so the budget only sees provider calls.
// The tracker is nil when no budget is configured.
func buildAutofiller(
	ctx context.Context, cfg config.Config, store db.Store, logger *zap.Logger,
) (*autofilluc.InstrumentedAutofiller, *autofilluc.BudgetTracker) {
	afCfg := cfg.Autofill

	base := openaiAutofill.NewAutofiller(&openaiAutofill.Config{
		APIKey:      afCfg.APIKey,
		BaseURL:     afCfg.BaseURL,
		Model:       afCfg.Model,
		Temperature: afCfg.Temperature,
		Provider:    afCfg.Provider,
		Logger:      logger,
	})

	var autofiller domain.Autofiller = base
	if ttl := afCfg.CacheTTL(); ttl > 0 {
		autofiller = autofillcache.New(base, store, cfg.Storage.KeyPrefix, ttl, metrics.AutofillCacheTotal, logger)
	}

	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budget autofilluc.BudgetChecker
	var tracker *autofilluc.BudgetTracker
	if afCfg.Budget.Limited() {
		action := autofilluc.BudgetActionWarn
		if afCfg.Budget.Action == "reject" {
			action = autofilluc.BudgetActionReject
		}
		tracker = autofilluc.NewBudgetTracker(
			afCfg.Provider, cfg.Storage.KeyPrefix,
			afCfg.Budget.DailyTokenLimit, afCfg.Budget.MonthlyTokenLimit, action, logger,
		)
		// Loads the current period counters from the store.
		tracker.WithStore(ctx, budgetrepo.New(store, 0, 0))
		budget = tracker
	}

	return autofilluc.NewInstrumentedAutofiller(autofiller, afCfg.Provider, afCfg.Model, budget, logger), tracker
}
