// cmd/assessd/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"immigration-engine/internal/assessment"
	"immigration-engine/internal/casework"
	casestore "immigration-engine/internal/casework/store"
	"immigration-engine/internal/catalog"
	"immigration-engine/internal/common/config"
	"immigration-engine/internal/common/database"
	apperrors "immigration-engine/internal/common/errors"
	"immigration-engine/internal/common/logger"
	"immigration-engine/internal/common/observability"
	"immigration-engine/pkg/catalogfile"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assessment engine",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Rule Catalog ---
	catalogStore := catalog.NewDefaultStore()
	if cfg.Catalog.BundleDir != "" {
		loaded, err := catalogfile.LoadInto(catalogStore, cfg.Catalog.BundleDir)
		if err != nil {
			zapLog.Fatal("catalog bundle load failed", zap.Error(err))
		}
		zapLog.Info("Catalog bundles loaded",
			zap.Int("entries", loaded),
			zap.String("dir", cfg.Catalog.BundleDir),
		)
	}
	cachedCatalog := catalog.NewCachedStore(catalogStore, rdb.Client, cfg.Catalog.GetCacheTTL(), log)

	// --- Services ---
	assessor := assessment.NewService(cachedCatalog, obs, log)

	caseStore := casestore.NewPostgresStore(pg.DB, log)
	cases := casework.NewService(caseStore, cfg.Casework, log)

	zapLog.Info("Assessment and casework services initialized")

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
				status := "healthy"
				code := http.StatusOK
				checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				if err := pg.Ping(checkCtx); err != nil {
					status = "degraded"
					code = http.StatusServiceUnavailable
				}
				if err := assessor.Ready(checkCtx); err != nil {
					status = "degraded"
					code = http.StatusServiceUnavailable
				}
				// The case store is reachable when a lookup for an unknown
				// id comes back as a clean not-found.
				if _, err := cases.GetCase(checkCtx, "healthcheck"); err != nil && !apperrors.HasCode(err, apperrors.ErrCodeCaseNotFound) {
					status = "degraded"
					code = http.StatusServiceUnavailable
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(code)
				json.NewEncoder(w).Encode(map[string]string{
					"status": status,
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", promhttp.Handler())

			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	zapLog.Info("Assessment engine stopped gracefully")
}
