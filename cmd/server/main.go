// Package main is the entrypoint for the LendIntake API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwhitfield/lendintake/internal/ai"
	"github.com/mwhitfield/lendintake/internal/ai/pdf"
	"github.com/mwhitfield/lendintake/internal/api"
	"github.com/mwhitfield/lendintake/internal/api/handler"
	mw "github.com/mwhitfield/lendintake/internal/api/middleware"
	"github.com/mwhitfield/lendintake/internal/cache"
	"github.com/mwhitfield/lendintake/internal/config"
	"github.com/mwhitfield/lendintake/internal/intake"
	"github.com/mwhitfield/lendintake/internal/notify"
	"github.com/mwhitfield/lendintake/internal/store"
	"github.com/mwhitfield/lendintake/internal/ticket"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "ai_provider", cfg.AI.Provider, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Create AI provider and analysis service
	aiProvider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		return fmt.Errorf("create AI provider: %w", err)
	}
	slog.Info("AI provider initialized", "provider", aiProvider.Name())

	guidelinesDoc := loadGuidelinesDoc(cfg.Server.GuidelinesPath)

	analysis := ai.NewAnalysisService(aiProvider, pdf.NewExtractor(), guidelinesDoc, cfg.AI.InferenceTimeout)

	// 6. Optional ticket client and email notifier
	var tickets ticket.Client
	if cfg.Ticket.Enabled() {
		tickets = ticket.NewHTTPClient(ticket.Config{
			Organization:        cfg.Ticket.Organization,
			Project:             cfg.Ticket.Project,
			PersonalAccessToken: cfg.Ticket.PAT,
			AreaPath:            cfg.Ticket.AreaPath,
			IterationPath:       cfg.Ticket.IterationPath,
		}, cfg.Ticket.Timeout)
		slog.Info("work item client initialized", "organization", cfg.Ticket.Organization, "project", cfg.Ticket.Project)
	}

	var notifier *notify.Notifier
	if cfg.Email.Enabled() {
		notifier, err = notify.NewNotifier(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.SupportAddress)
		if err != nil {
			return fmt.Errorf("create notifier: %w", err)
		}
		slog.Info("email notifier initialized", "region", cfg.Email.Region)
	}

	// 7. Create store and submit service
	pgStore := store.NewPostgresStore(pool)

	var intakeNotifier intake.Notifier
	if notifier != nil {
		intakeNotifier = notifier
	}
	submitSvc := intake.NewService(pgStore, tickets, intakeNotifier)

	// 8. Build router with dependencies
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(redisCache, 60)

	// A typed nil *notify.Notifier must not reach the handler's nil check.
	var supportSender handler.SupportSender
	if notifier != nil {
		supportSender = notifier
	}

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler:      handler.NewHealthHandler(pgStore, redisCache, aiProvider.Name()),
		FormOptionsHandler: handler.NewFormOptionsHandler(),

		AnalyzeHandler:      handler.NewAnalyzeHandler(analysis),
		WizardHandler:       handler.NewWizardQuestionsHandler(analysis),
		EnhanceHandler:      handler.NewEnhanceHandler(analysis),
		SubmitHandler:       handler.NewSubmitHandler(submitSvc),
		SupportEmailHandler: handler.NewSupportEmailHandler(supportSender),
		ListSubmissions:     handler.NewListSubmissionsHandler(pgStore),
		GetSubmission:       handler.NewGetSubmissionHandler(pgStore),

		CreateKeyHandler: handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:  handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler: handler.NewRevokeKeyHandler(pgStore),
	}

	router := api.NewRouter(deps)

	// 9. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// loadGuidelinesDoc reads the full guidelines document used to seed wizard
// prompts. A missing file is not fatal; the wizard falls back to its
// default question sets.
func loadGuidelinesDoc(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("guidelines document not loaded", "path", path, "error", err)
		return ""
	}
	return string(data)
}
