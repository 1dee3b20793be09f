package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dcastellanos/paneltrack-backend/internal/clients"
	"github.com/dcastellanos/paneltrack-backend/internal/cron"
	"github.com/dcastellanos/paneltrack-backend/internal/panels"
	"github.com/dcastellanos/paneltrack-backend/internal/subscriptions"
	"github.com/dcastellanos/paneltrack-backend/pkg/config"
	"github.com/dcastellanos/paneltrack-backend/pkg/db"
	"github.com/dcastellanos/paneltrack-backend/pkg/logger"
	"github.com/dcastellanos/paneltrack-backend/pkg/metrics"
	"github.com/dcastellanos/paneltrack-backend/pkg/migrate"
	"github.com/dcastellanos/paneltrack-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	panelRepo := panels.NewRepository(dbClient.DB())
	clientRepo := clients.NewRepository(dbClient.DB())
	subRepo := subscriptions.NewRepository(dbClient.DB())

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

	reminderJob, err := cron.NewExpiryReminderJob(cron.ExpiryReminderJobParams{
		Logger:        logg,
		Subscriptions: subRepo,
		Clients:       clientSvc,
		LeadDays:      cfg.Cron.ReminderLeadDays,
		GraceDays:     cfg.Cron.OverdueGraceDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create expiry reminder job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(reminderJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
