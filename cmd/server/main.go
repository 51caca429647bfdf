package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shubh-37/social-content-engine/config"
	"github.com/shubh-37/social-content-engine/internal/agents"
	"github.com/shubh-37/social-content-engine/internal/api"
	"github.com/shubh-37/social-content-engine/internal/database"
	"github.com/shubh-37/social-content-engine/internal/logging"
	"github.com/shubh-37/social-content-engine/internal/monitoring"
	slackpkg "github.com/shubh-37/social-content-engine/internal/slack"
)

const serviceName = "social-content-engine"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.NewLogger("info").WithError(err).Fatal("Configuration error")
	}

	log := logging.NewServiceLogger(serviceName, cfg.LogLevel)
	log.Info("🚀 Social Content Engine Starting...")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Configuration error")
	}

	location, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("Configuration error")
	}

	ctx := context.Background()

	// Connect to database
	db, err := database.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.CreateTables(ctx); err != nil {
		log.WithError(err).Fatal("Failed to create tables")
	}

	log.Info("✅ Database connected and ready")

	// Repositories
	postRepo := database.NewPostRepository(db)
	analyticsRepo := database.NewAnalyticsRepository(db)

	// Content engine
	hashtagAgent, err := agents.NewHashtagAgent(cfg.HashtagCacheSize)
	if err != nil {
		log.WithError(err).Fatal("Failed to create hashtag extractor")
	}
	contentGenerator := agents.NewContentGeneratorAgent(hashtagAgent, agents.RandomPicker{})
	engagementAgent := agents.NewEngagementAgent(location)
	scheduler := agents.NewSchedulerAgent(postRepo, engagementAgent)

	metrics := monitoring.NewMetricsCollector(serviceName)

	publisher := agents.NewPublisher(scheduler, postRepo, location, log).WithRecorder(metrics)
	if err := publisher.Start(cfg.PublishSchedule); err != nil {
		log.WithError(err).Fatal("Failed to start publisher")
	}
	defer publisher.Stop()

	deps := api.Dependencies{
		Posts:     postRepo,
		Analytics: analyticsRepo,
		Generator: contentGenerator,
		Hashtags:  hashtagAgent,
		Timing:    engagementAgent,
		DB:        db,
		Metrics:   metrics,
		Log:       log,
	}

	// Slack ChatOps is optional
	if cfg.SlackEnabled() {
		slackClient, err := slackpkg.NewClient(cfg.SlackToken)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Slack")
		}

		approvalHandler := slackpkg.NewApprovalHandler(slackClient, postRepo, log)
		commandHandler := slackpkg.NewCommandHandler(slackClient, slackpkg.CommandDeps{
			Posts:       postRepo,
			Stats:       analyticsRepo,
			Generator:   contentGenerator,
			Hashtags:    hashtagAgent,
			Timing:      engagementAgent,
			Scheduler:   scheduler,
			Location:    location,
			PostsPerDay: cfg.PostsPerDay,
			Log:         log,
		})
		messageHandler := slackpkg.NewMessageHandler(slackClient, commandHandler, approvalHandler, log)
		deps.Slack = slackpkg.NewServer(messageHandler, approvalHandler, cfg.SlackSigningSecret, log)

		log.Info("💬 Slack: Connected and listening on /slack/events")
	} else {
		log.Info("💬 Slack: not configured, ChatOps disabled")
	}

	server := api.New(deps, cfg.Port)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	log.Info("✅ System initialized successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ HTTP server shutdown failed")
	}
}
