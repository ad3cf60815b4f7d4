package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/medicalriskpipeline/internal/adapters/database"
	"github.com/zatekoja/medicalriskpipeline/internal/adapters/events"
	"github.com/zatekoja/medicalriskpipeline/internal/application/services"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/inference"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/ledger"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/postgres"
	redisclient "github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/redis"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/notifications"
	"github.com/zatekoja/medicalriskpipeline/internal/infrastructure/observability"
	"github.com/zatekoja/medicalriskpipeline/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	log.Info().Msg("Starting risk pipeline worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up OpenTelemetry")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("OpenTelemetry shutdown failed")
			}
		}()

		metrics, err = observability.InitMetrics()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize metrics")
		}
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	mailer, err := notifications.NewSMTPSender(&cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize SMTP sender")
	}

	patientRepo := database.NewPatientAdapter(pgClient)
	recordRepo := database.NewMedicalRecordAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	notificationRepo := database.NewHealthNotificationAdapter(pgClient)

	notifier := services.NewRiskNotificationService(userRepo, notificationRepo, mailer)
	pipeline := services.NewRiskPipeline(
		patientRepo,
		recordRepo,
		services.NewFeatureAssembler(),
		ledger.NewClient(&cfg.Ledger),
		inference.NewClient(&cfg.Inference),
		notifier,
		metrics,
	)

	feed := events.NewRedisRecordFeed(redisClient, cfg.Worker.FeedChannel)
	defer feed.Close()

	batches, err := feed.Subscribe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to subscribe to record feed")
	}

	log.Info().Str("channel", cfg.Worker.FeedChannel).Msg("Worker consuming record feed")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Worker shutting down")
			return
		case batch, ok := <-batches:
			if !ok {
				log.Warn().Msg("Record feed closed, shutting down")
				return
			}
			pipeline.ProcessBatch(ctx, batch)
		}
	}
}
