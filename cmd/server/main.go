package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"icatdirect/internal/auth"
	"icatdirect/internal/config"
	"icatdirect/internal/handler"
	"icatdirect/internal/middleware"
	"icatdirect/internal/queries"
	"icatdirect/internal/repository/postgres"
	"icatdirect/internal/service/listing"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Log to stdout, and to a rotating file when LOG_DIR is set
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := config.NewLogger(cfg.Environment, out)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"icat_host", cfg.ICATHost,
		"icat_db", cfg.ICATDatabase,
	)

	// Token verification is mandatory outside development
	var verifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer v.Close()
		verifier = v
	} else if cfg.IsDev() {
		logger.Warn("DEV MODE: JWKS_URL not set, users are taken from the ?user= parameter")
	} else {
		log.Fatalf("JWKS_URL is required when ENVIRONMENT=%s", cfg.Environment)
	}

	catalog, err := queries.Load()
	if err != nil {
		log.Fatalf("Failed to load query catalog: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, postgres.DescriptorFromConfig(cfg), cfg.MaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to ICAT: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", cfg.MaxConns,
		"permission_workers", cfg.PermissionWorkers,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	executor := postgres.NewExecutor(&postgres.RepositoryConfig{
		DB:       pool,
		Catalog:  catalog,
		Registry: registry,
		Logger:   logger,
	})
	resolver := listing.NewPermissionResolver(executor, cfg.PermissionWorkers)
	listingService := listing.NewListingService(executor, resolver, logger)

	listingHandler := handler.NewListingHandler(listingService, logger)
	healthHandler := handler.NewHealthHandler(pool, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, listingHandler, healthHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Logging → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware(verifier, logger, "/health", "/metrics")(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
