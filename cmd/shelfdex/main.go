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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shelfdex/shelfdex/internal/config"
	dbRedis "github.com/shelfdex/shelfdex/internal/db/redis"
	logpkg "github.com/shelfdex/shelfdex/internal/logger"
	"github.com/shelfdex/shelfdex/internal/metrics"
	memoryrepo "github.com/shelfdex/shelfdex/internal/repository/memory"
	redisrepo "github.com/shelfdex/shelfdex/internal/repository/redis"
	"github.com/shelfdex/shelfdex/internal/seed"
	chiTransport "github.com/shelfdex/shelfdex/internal/transport/chi"
	recorduc "github.com/shelfdex/shelfdex/internal/usecase/record"
	"github.com/shelfdex/shelfdex/internal/version"

	healthuc "github.com/shelfdex/shelfdex/internal/usecase/health"
	searchuc "github.com/shelfdex/shelfdex/internal/usecase/search"
	suggestuc "github.com/shelfdex/shelfdex/internal/usecase/suggest"
)

// recordStore is what both repository drivers provide.
type recordStore interface {
	recorduc.Repository
	healthuc.StorePinger
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shelfdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_driver", cfg.Store.Driver),
	)

	ctx := context.Background()

	// Create record store based on driver
	var repo recordStore
	switch cfg.Store.Driver {
	case "memory":
		repo = memoryrepo.New()
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Store.Addrs,
			Password: cfg.Store.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Store.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Store not ready", zap.Error(err))
		}
		logger.Info("Connected to redis store")
		repo = redisrepo.New(store, cfg.Store.KeyPrefix)
	default:
		logger.Fatal("Unknown store driver", zap.String("driver", cfg.Store.Driver))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Create use case services
	recordSvc := recorduc.New(repo)
	searchSvc, err := searchuc.New(repo, searchuc.Config{
		Threshold: cfg.Search.Threshold,
		Weights: searchuc.Weights{
			Title:       cfg.Search.Weights.Title,
			Tags:        cfg.Search.Weights.Tags,
			Description: cfg.Search.Weights.Description,
		},
	})
	if err != nil {
		logger.Fatal("Invalid search configuration", zap.Error(err))
	}
	suggestSvc := suggestuc.New(repo, cfg.Search.SuggestMinLength, cfg.Search.SuggestLimit)
	healthSvc := healthuc.New(repo)

	// Load sample data if configured
	if cfg.Seed.Path != "" {
		entries, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			logger.Fatal("Failed to load seed data", zap.Error(err))
		}
		n, err := seed.Apply(ctx, recordSvc, entries)
		if err != nil {
			logger.Fatal("Failed to apply seed data", zap.Error(err))
		}
		logger.Info("Seeded catalog", zap.Int("records", n), zap.String("path", cfg.Seed.Path))
	}

	// Create chi server
	server := chiTransport.NewServer(recordSvc, searchSvc, suggestSvc, healthSvc, logger).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
