package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcastellanos/paneltrack-backend/api/routes"
	"github.com/dcastellanos/paneltrack-backend/internal/calendar"
	"github.com/dcastellanos/paneltrack-backend/internal/clients"
	"github.com/dcastellanos/paneltrack-backend/internal/cuts"
	"github.com/dcastellanos/paneltrack-backend/internal/migration"
	"github.com/dcastellanos/paneltrack-backend/internal/panels"
	"github.com/dcastellanos/paneltrack-backend/internal/payments"
	"github.com/dcastellanos/paneltrack-backend/internal/projects"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	"github.com/dcastellanos/paneltrack-backend/pkg/config"
	"github.com/dcastellanos/paneltrack-backend/pkg/db"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/dcastellanos/paneltrack-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite {
		if err := db.AutoMigrate(dbClient.DB()); err != nil {
			logg.Error(context.Background(), "failed to build sqlite schema", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	panelRepo := panels.NewRepository(dbClient.DB())
	clientRepo := clients.NewRepository(dbClient.DB())
	subRepo := subscriptions.NewRepository(dbClient.DB())
	paymentRepo := payments.NewRepository(dbClient.DB())
	projectRepo := projects.NewRepository(dbClient.DB())
	cutRepo := cuts.NewRepository(dbClient.DB())

	panelSvc, err := panels.NewService(panels.ServiceParams{
		Repo:              panelRepo,
		SubscriptionRepo:  subRepo,
		TransactionRunner: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create panel service", err)
		os.Exit(1)
	}

	clientSvc, err := clients.NewService(clients.ServiceParams{
		Repo:              clientRepo,
		SubscriptionRepo:  subRepo,
		Panels:            panelSvc,
		TransactionRunner: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}

	subSvc, err := subscriptions.NewService(subscriptions.ServiceParams{
		Repo:              subRepo,
		Clients:           clientSvc,
		Panels:            panelSvc,
		TransactionRunner: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription service", err)
		os.Exit(1)
	}

	projectSvc, err := projects.NewService(projectRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create project service", err)
		os.Exit(1)
	}

	paymentSvc, err := payments.NewService(payments.ServiceParams{
		Repo:     paymentRepo,
		Clients:  clientSvc,
		Projects: projectSvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	cutSvc, err := cuts.NewService(cuts.ServiceParams{
		Repo:     cutRepo,
		Payments: paymentRepo,
		Projects: projectRepo,
		Panels:   panelRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cut service", err)
		os.Exit(1)
	}

	calendarSvc, err := calendar.NewService(calendar.ServiceParams{
		Subscriptions: subRepo,
		Payments:      paymentRepo,
		Clients:       clientRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create calendar service", err)
		os.Exit(1)
	}

	legacy, err := migration.NewRunner(dbClient.DB(), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create legacy migration runner", err)
		os.Exit(1)
	}
	legacy.Run(context.Background())

	registry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, routes.Services{
			Panels:        panelSvc,
			Clients:       clientSvc,
			Subscriptions: subSvc,
			Payments:      paymentSvc,
			Projects:      projectSvc,
			Cuts:          cutSvc,
			Calendar:      calendarSvc,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
