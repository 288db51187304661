// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/use-this-search/clustering-platform/internal/clusterer"
	"github.com/use-this-search/clustering-platform/internal/config"
	"github.com/use-this-search/clustering-platform/internal/handler"
	"github.com/use-this-search/clustering-platform/internal/middleware"
	natsclient "github.com/use-this-search/clustering-platform/internal/nats"
	"github.com/use-this-search/clustering-platform/internal/service"
	"github.com/use-this-search/clustering-platform/internal/store"
	"github.com/use-this-search/clustering-platform/pkg/logger"
	"github.com/use-this-search/clustering-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "clustering-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Load the plan table
	plans, err := config.LoadPlans(cfg.PlansFile)
	if err != nil {
		log.Error("failed to load plan table", zap.Error(err))
		os.Exit(1)
	}

	// Open the analysis store
	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Connect to NATS
	nc, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer nc.Close()

	// Ensure the clustering event stream exists
	publisher := natsclient.NewPublisher(nc)
	if err := publisher.EnsureStream(ctx); err != nil {
		log.Error("failed to ensure stream", zap.Error(err))
		os.Exit(1)
	}

	// The plan resolver reads the plan tag the auth collaborator placed in
	// the request context. The clustering service never touches auth itself.
	resolver := service.PlanResolverFunc(func(ctx context.Context, userID, companyID string) (string, error) {
		return middleware.GetPlanTag(ctx), nil
	})

	// Initialize services
	engine := clusterer.NewEngine()
	analysisSvc := service.NewAnalysisService(
		engine, st, st, plans, resolver, publisher, cfg.StoreTimeout, log,
	)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(st, nc)
	clusteringHandler := handler.NewClusteringHandler(analysisSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/clustering", func(r chi.Router) {
			r.Post("/analyze", clusteringHandler.Analyze)
			r.Get("/analyses", clusteringHandler.List)
			r.Get("/analyses/{id}", clusteringHandler.Get)
			r.Delete("/analyses/{id}", clusteringHandler.Delete)
			r.Post("/export", clusteringHandler.Export)
			r.Get("/usage-limits", clusteringHandler.UsageLimits)
			r.Get("/stats", clusteringHandler.Stats)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
