package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/eventfinder/internal/app"
	"github.com/cimillas/eventfinder/internal/catalog"
	"github.com/cimillas/eventfinder/internal/clock"
	"github.com/cimillas/eventfinder/internal/config"
	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/llm"
	"github.com/cimillas/eventfinder/internal/mailer"
	"github.com/cimillas/eventfinder/internal/refresh"
	"github.com/cimillas/eventfinder/internal/storage/postgres"
	transporthttp "github.com/cimillas/eventfinder/internal/transport/http"
	"github.com/cimillas/eventfinder/migrations"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	feedName        = "South African Events"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if wd, err := os.Getwd(); err == nil {
		config.LoadDotEnv(bootLogger, wd)
	}

	cfg, err := config.Load(*configPath, os.LookupEnv)
	if err != nil {
		bootLogger.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	clk := clock.NewSystem()

	mailClient := mailer.NewClient(mailer.Config{
		BaseURL: cfg.Mailer.BaseURL,
		APIKey:  cfg.Mailer.APIKey,
		From:    cfg.Mailer.From,
		Timeout: cfg.Mailer.Timeout,
	}, nil)
	llmClient := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, nil)
	if !mailClient.Configured() {
		logger.Warn("RESEND_API_KEY not set, email notifications disabled")
	}
	if !llmClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, recommendations disabled")
	}
	notifySvc := app.NewNotificationService(mailClient, cfg.PublicBaseURL, loc,
		app.WithNotificationLogger(logger.With("component", "notifications")))

	var (
		store       *catalog.Store
		refresher   *refresh.Refresher
		recSource   app.EventSource
		creator     transporthttp.EventCreator
		registrar   transporthttp.Registrar
		refreshStat transporthttp.RefreshStatus
	)

	switch cfg.Store.Mode {
	case config.StoreModePostgres:
		startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		pool, err := openPool(startupCtx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := migrations.Apply(startupCtx, pool)
		if err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("migrations applied", "files", applied)
		}

		eventRepo := postgres.NewEventRepository(pool, postgres.WithCurrency(cfg.Currency))
		regRepo := postgres.NewRegistrationRepository(pool, postgres.WithCurrency(cfg.Currency))

		if store, err = catalog.New(nil); err != nil {
			return err
		}
		refresher = refresh.New(eventRepo, store, logger.With("component", "refresh"), refresh.WithLocation(loc))
		if err := refresher.RunOnce(startupCtx); err != nil {
			logger.Warn("initial catalog load failed, serving an empty catalog", "error", err)
		}
		if err := refresher.Start(cfg.Store.Refresh); err != nil {
			return err
		}

		recSource = eventRepo
		creator = app.NewEventService(eventRepo, cfg.Currency, app.WithCreatedHook(publishTo(store, logger)))
		registrar = app.NewRegistrationService(regRepo, clk,
			app.WithConfirmations(eventRepo, notifySvc),
			app.WithRegistrationLogger(logger.With("component", "registrations")),
		)
		refreshStat = refresher
	default:
		events, err := loadStaticEvents(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		if store, err = catalog.New(events); err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		recSource = app.CatalogSource{Catalog: store}
		logger.Info("serving static catalog", "events", store.Len())
	}

	discovery := app.NewDiscoveryService(store, clk, app.WithLocation(loc))
	recommender := app.NewRecommendationService(recSource, llmClient, clk, logger.With("component", "recommendations"))

	handler := transporthttp.NewRouter(transporthttp.Deps{
		Discovery:    discovery,
		Catalog:      store,
		Refresh:      refreshStat,
		EventCreator: creator,
		Registrar:    registrar,
		Reminders:    app.NewReminderBook(store),
		Recommender:  recommender,
		Notifier:     notifySvc,
		Feed:         transporthttp.FeedOptions{Name: feedName, BaseURL: cfg.PublicBaseURL},
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("api listening", "addr", server.Addr, "store", cfg.Store.Mode, "timezone", loc.String())

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serveErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "error", err)
	}
	if refresher != nil {
		refresher.Stop(shutdownCtx)
	}
	logger.Info("server stopped")
	return serveErr
}

// publishTo makes created events readable from the catalog before the next refresh.
func publishTo(store *catalog.Store, logger *slog.Logger) func(context.Context, domain.Event) {
	return func(_ context.Context, event domain.Event) {
		if err := store.Upsert(event); err != nil {
			logger.Warn("publish created event to catalog failed", "event_id", event.ID, "error", err)
		}
	}
}

func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

func loadStaticEvents(path string) ([]domain.Event, error) {
	if path == "" {
		return catalog.LoadSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return catalog.LoadYAML(f)
}
