/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the wage engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Build the zap logger
  3. Initialize SQLite store
  4. Connect to Redis when configured (envelopes + holiday cache)
  5. Build the holiday provider chain and resolver
  6. Create API handler and prefetch scheduler
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port          HTTP server port (default: 8080)
  -db            SQLite database path (default: wage.db)
                 Use ":memory:" for in-memory database
  -log-level     debug|info|warn|error
  -log-format    json|console
  -redis         Redis address, empty disables Redis
  -holiday-api   Holiday API base URL, empty uses the static table
  -prefetch      Prefetch interval, 0 disables the scheduler

ENVIRONMENT:
  APP_PORT, DB_PATH, CORS_ORIGINS, LOG_LEVEL, LOG_FORMAT,
  REDIS_ADDR, REDIS_PASSWORD, REDIS_DB,
  HOLIDAY_API_URL, HOLIDAY_API_TIMEOUT, HOLIDAY_CACHE_TTL, PREFETCH_INTERVAL

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the prefetch scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close Redis and database connections

EXAMPLES:
  # Run with in-memory database and console logs
  ./server -db=":memory:" -log-format=console

  # Use the public holiday API cached in Redis
  ./server -redis=localhost:6379 -holiday-api=https://holidays-jp.github.io/api/v1

SEE ALSO:
  - config/config.go: Configuration sources
  - api/server.go: Router configuration
  - api/scheduler.go: Holiday prefetch
*/
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

	"github.com/warp/wage-engine/api"
	"github.com/warp/wage-engine/config"
	"github.com/warp/wage-engine/holiday"
	"github.com/warp/wage-engine/logger"
	"github.com/warp/wage-engine/store"
	"github.com/warp/wage-engine/store/redis"
	"github.com/warp/wage-engine/store/sqlite"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	// Initialize store
	db, err := sqlite.New(cfg.App.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", zap.String("path", cfg.App.DBPath), zap.Error(err))
	}
	defer db.Close()

	opts := api.Options{Logger: log}

	// Holiday provider chain: API (or static table), optionally cached in Redis
	var provider holiday.Provider = holiday.NewStaticProvider()
	if cfg.Holiday.APIURL != "" {
		provider = holiday.NewAPIProvider(holiday.APIConfig{
			BaseURL:    cfg.Holiday.APIURL,
			Timeout:    cfg.Holiday.APITimeout,
			RetryCount: 2,
		}, log)
	}

	if cfg.RedisEnabled() {
		rdb := redis.NewClient(redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redis.Ping(ctx, rdb)
		cancel()

		if err != nil {
			log.Warn("redis unavailable, using sqlite storage", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			var kv store.KV = redis.NewKV(rdb, 0)
			opts.KV, opts.KVDriver = kv, "redis"
			provider = holiday.NewRedisCachedProvider(provider, rdb, cfg.Holiday.CacheTTL, log)
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	opts.Resolver = holiday.NewResolver(provider, holiday.NewCache(), log)

	// Initialize handler
	handler := api.NewHandler(db, opts)

	// Start holiday prefetch
	scheduler := api.NewPrefetchScheduler(opts.Resolver, log)
	scheduler.Interval = cfg.Holiday.PrefetchInterval
	scheduler.Enabled = cfg.Holiday.PrefetchInterval > 0
	handler.Scheduler = scheduler
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(handler, cfg.App.CORSOrigins)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", zap.Int("port", cfg.App.Port), zap.String("db", cfg.App.DBPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
