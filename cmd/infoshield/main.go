// Command infoshield runs the InfoShield disaster-query verification
// service: HTTP API, WebSocket hub and optional MCP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	ishttp "github.com/infoshield/infoshield/internal/adapter/http"
	"github.com/infoshield/infoshield/internal/adapter/llm"
	ismcp "github.com/infoshield/infoshield/internal/adapter/mcp"
	isnats "github.com/infoshield/infoshield/internal/adapter/nats"
	"github.com/infoshield/infoshield/internal/adapter/otel"
	"github.com/infoshield/infoshield/internal/adapter/postgres"
	"github.com/infoshield/infoshield/internal/adapter/ristretto"
	"github.com/infoshield/infoshield/internal/adapter/ws"
	"github.com/infoshield/infoshield/internal/config"
	"github.com/infoshield/infoshield/internal/logger"
	"github.com/infoshield/infoshield/internal/middleware"
	"github.com/infoshield/infoshield/internal/port/database"
	"github.com/infoshield/infoshield/internal/port/messagequeue"
	"github.com/infoshield/infoshield/internal/resilience"
	"github.com/infoshield/infoshield/internal/service"

	"github.com/infoshield/infoshield/internal/adapter/csvstore"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-key" {
		if err := runHashKey(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "hash-key: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"queue_backend", cfg.Queue.Backend,
	)

	ctx := context.Background()

	shutdownTracer := otel.InitTracer(cfg.Logging.Service)
	defer func() { _ = shutdownTracer(context.Background()) }()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Review store ---
	var store database.ReviewStore
	switch cfg.Queue.Backend {
	case "postgres":
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
		slog.Info("postgres review store ready")
	default:
		csvStore, err := csvstore.New(cfg.Queue.CSVPath)
		if err != nil {
			return fmt.Errorf("csv store: %w", err)
		}
		store = csvStore
		slog.Info("csv review store ready", "path", cfg.Queue.CSVPath)
	}

	// --- NATS (optional; the pipeline works without it) ---
	var queue messagequeue.Queue
	if natsQueue, err := isnats.Connect(ctx, cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, events disabled", "error", err)
	} else {
		queue = natsQueue
		defer func() { _ = natsQueue.Drain() }()
	}

	// --- Cache ---
	cache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	// --- Collaborators ---
	llmClient := llm.NewClient(cfg.LiteLLM.URL, cfg.LiteLLM.MasterKey)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))
	searcher := llm.NewSearcher(llmClient, cfg.LiteLLM.SearchModel)
	synthesizer := llm.NewSynthesizer(llmClient, cfg.LiteLLM.SynthModel)

	// --- Services ---
	hub := ws.NewHub()
	reviewSvc := service.NewReviewService(store, queue, hub)
	verifySvc := service.NewVerificationService(cfg.Verification, cfg.Cache, service.VerificationDeps{
		Searcher:    searcher,
		Synthesizer: synthesizer,
		Reviews:     reviewSvc,
		Cache:       cache,
		Queue:       queue,
		Hub:         hub,
		Metrics:     metrics,
	})

	// --- MCP ---
	if cfg.MCP.Enabled {
		mcpSrv := ismcp.NewServer(ismcp.ServerConfig{
			Addr:    cfg.MCP.Addr,
			Name:    cfg.Logging.Service,
			Version: "0.1.0",
		}, ismcp.ServerDeps{
			Verifier: verifySvc,
			Reviews:  reviewSvc,
		})
		if err := mcpSrv.Start(); err != nil {
			return fmt.Errorf("mcp: %w", err)
		}
		defer func() { _ = mcpSrv.Stop(context.Background()) }()
	}

	// --- HTTP ---
	handlers := &ishttp.Handlers{
		Verifications: verifySvc,
		Reviews:       reviewSvc,
		Queue:         queue,
	}

	r := chi.NewRouter()
	r.Use(ishttp.CORS(cfg.Server.CORSOrigin))
	r.Use(ishttp.SecurityHeaders)
	r.Use(ishttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))

	ishttp.MountRoutes(r, handlers, hub, cfg.Verification.ReviewerKeyHash)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
