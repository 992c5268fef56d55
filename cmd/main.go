package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/UnknownOlympus/argus/internal/api"
	"github.com/UnknownOlympus/argus/internal/cache"
	"github.com/UnknownOlympus/argus/internal/config"
	"github.com/UnknownOlympus/argus/internal/elevation"
	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/repository"
	"github.com/UnknownOlympus/argus/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// Server timeouts.
const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// One provider, and so one limiter, serves every worker and API request.
	providerConfig := elevation.ProviderConfig{
		Type:      elevation.ProviderType(cfg.Provider.Type),
		APIKey:    cfg.Provider.APIKey,
		BaseURL:   cfg.Provider.BaseURL,
		RateLimit: cfg.Provider.RateLimit,
		Logger:    logger,
	}

	provider, err := elevation.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create elevation provider: %v", err)
	}

	var valkeyCache *cache.ValkeyCache
	if cfg.Cache.Addr != "" {
		valkeyCache, err = cache.NewValkeyCache(cfg.Cache.Addr)
		if err != nil {
			log.Fatalf("Failed to connect to elevation cache: %v", err)
		}
		defer valkeyCache.Close()

		provider = elevation.NewCachedProvider(provider, valkeyCache, cfg.Cache.TTL, appMetrics, logger)
		logger.InfoContext(ctx, "Elevation cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.Cache.TTL)
	}

	logger.InfoContext(ctx, "Elevation provider initialized", "type", cfg.Provider.Type)

	// The engine is shared by the worker pool and the HTTP endpoint.
	engine := framing.NewEngine(logger, provider, cfg.Provider.Type, appMetrics)

	framingService := service.NewFramingService(
		logger,
		repo,
		engine,
		appMetrics,
		cfg.Workers,
		cfg.Interval,
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the server and the worker in goroutines to allow main to listen for signals.
	var wgr sync.WaitGroup
	wgr.Add(2)
	go func() {
		defer wgr.Done()
		startServer(ctx, logger, reg, dtb, valkeyCache, api.NewHandler(logger, engine), cfg.Port)
	}()
	go func() {
		defer wgr.Done()
		framingService.Run(ctx)
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Let in-flight requests and the current job batch finish.
	wgr.Wait()

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startServer starts an HTTP server that provides the framing endpoint next to
// the health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - dtb: A pgxpool connector for database methods (ping)
// - valkeyCache: The elevation cache, nil when caching is disabled.
// - handler: The framing API handler.
// - port: The port number on which the server will listen.
func startServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	valkeyCache *cache.ValkeyCache,
	handler *api.Handler,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		} else if valkeyCache != nil {
			if err = valkeyCache.Ping(req.Context()); err != nil {
				status, body = http.StatusServiceUnavailable, "cache ping failed"
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	handler.Register(mux)

	log.InfoContext(ctx, "Starting server", "port", port)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.ErrorContext(ctx, "Server failed", "error", err)
		return
	}

	serve(ctx, log, server, listener)
}

// serve runs server on listener until ctx is canceled, then shuts it down and
// returns once in-flight requests have completed or the shutdown timed out.
func serve(ctx context.Context, log *slog.Logger, server *http.Server, listener net.Listener) {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(shutdownCtx, "Server shutdown failed", "error", err)
		}
	}()

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Server failed", "error", err)
	}

	<-shutdownDone
	log.InfoContext(ctx, "Server stopped")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
