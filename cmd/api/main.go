package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/secops-dashboard/dashboard-service/internal/api/http"
	"github.com/secops-dashboard/dashboard-service/internal/api/http/handlers"
	"github.com/secops-dashboard/dashboard-service/internal/auth"
	"github.com/secops-dashboard/dashboard-service/internal/config"
	"github.com/secops-dashboard/dashboard-service/internal/events"
	"github.com/secops-dashboard/dashboard-service/internal/insights"
	"github.com/secops-dashboard/dashboard-service/internal/observability"
	"github.com/secops-dashboard/dashboard-service/internal/orgunit"
	"github.com/secops-dashboard/dashboard-service/internal/persistence"
	"github.com/secops-dashboard/dashboard-service/internal/remediation"
	"github.com/secops-dashboard/dashboard-service/internal/repository"
	"github.com/secops-dashboard/dashboard-service/internal/service"
	"github.com/secops-dashboard/dashboard-service/internal/ticketing"
	"github.com/secops-dashboard/dashboard-service/internal/worker"
)

const (
	tokenTTLMinutes = 60
	summaryTTL      = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	source := newTicketSource(cfg, logger)
	normalizer := insights.NewNormalizer(cfg.Display.DateLayout, cfg.Display.Location())
	dispatcher := events.NewInMemoryDispatcher()

	var (
		preferences repository.PreferenceRepository
		runs        repository.RemediationRunRepository
		summaries   repository.SummaryCache
		dashboards  repository.DashboardCache
	)
	if pool := pg.PoolHandle(); pool != nil {
		preferences = repository.NewPreferenceRepository(pool)
		runs = repository.NewRemediationRunRepository(pool)
	}
	if client := redis.Handle(); client != nil {
		summaries = repository.NewSummaryCache(client, summaryTTL)
		dashboards = repository.NewDashboardCache(client)
	}

	assistant := remediation.NewClient(remediation.Config{
		QueryURL:   cfg.Remediation.QueryURL,
		ExecuteURL: cfg.Remediation.ExecuteURL,
		Timeout:    cfg.Remediation.Timeout(),
	}, logger)
	org := orgunit.NewClient(orgunit.Config{
		URL:     cfg.OrgService.URL,
		Timeout: cfg.OrgService.Timeout(),
	}, logger)

	registry := service.NewViewRegistry(service.ViewDependencies{
		Source:       source,
		Normalizer:   normalizer,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
		PageSize:     cfg.Ticketing.PageSize,
		FetchTimeout: cfg.Ticketing.Timeout(),
	})
	dashboardService := service.NewDashboardService(source, normalizer, dashboards, dispatcher, metrics, logger, service.DashboardOptions{
		PageSize:     cfg.Ticketing.PageSize,
		MaxPages:     cfg.Dashboard.MaxPages,
		CacheTTL:     cfg.Dashboard.CacheTTL(),
		FetchTimeout: cfg.Ticketing.Timeout(),
	})
	remediationService := service.NewRemediationService(assistant, summaries, runs, dispatcher, logger)
	preferenceService := service.NewPreferenceService(preferences, logger)
	ticketService := service.NewTicketService(source, normalizer, cfg.Ticketing.Timeout(), logger)

	var history service.HistoryRecorder
	if cfg.OrgService.URL != "" {
		history = org
	}
	worker.StartActivityWorker(service.NewActivityService(dispatcher, history, runs, logger))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, tokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, source.Kind(), pg, redis),
		Views:          handlers.NewViewsHandler(registry),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Assistant:      handlers.NewAssistantHandler(remediationService),
		Org:            handlers.NewOrgHandler(org),
		Preferences:    handlers.NewPreferencesHandler(preferenceService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Metrics:        metrics,
	})

	scheduler := worker.NewScheduler(logger)
	if len(cfg.Dashboard.OrgUnits) > 0 {
		if err := scheduler.Add(worker.Job{
			Name:     "dashboard-refresh",
			Schedule: cfg.Dashboard.RefreshCron,
			Timeout:  time.Duration(cfg.Dashboard.MaxPages) * cfg.Ticketing.Timeout(),
			Run:      worker.DashboardRefreshJob(dashboardService, cfg.Dashboard.OrgUnits, logger),
		}); err != nil {
			logger.Fatal("invalid dashboard refresh schedule", zap.Error(err))
		}
	}
	if err := scheduler.Add(worker.Job{
		Name:     "view-sweep",
		Schedule: cfg.Views.SweepCron,
		Run:      worker.ViewSweepJob(registry, cfg.Views.IdleTTL()),
	}); err != nil {
		logger.Fatal("invalid view sweep schedule", zap.Error(err))
	}
	scheduler.Start()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler shutdown", zap.Error(err))
	}
}

func newTicketSource(cfg *config.Config, logger *zap.Logger) ticketing.Source {
	if cfg.Ticketing.DemoMode {
		logger.Info("serving demo tickets")
		return ticketing.NewDemoSource(time.Now())
	}
	return ticketing.NewClient(ticketing.ClientConfig{
		BaseURL:     cfg.Ticketing.BaseURL,
		Credentials: ticketing.Credentials{APIKey: cfg.Ticketing.APIKey},
		Timeout:     cfg.Ticketing.Timeout(),
	}, logger)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
