// Package main is the entry point for the vending-content-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/config"
	"vending-content-service/internal/domain"
	"vending-content-service/internal/infra/contentful"
	rediscache "vending-content-service/internal/infra/redis"
	"vending-content-service/internal/job"
	"vending-content-service/internal/logger"
	"vending-content-service/internal/slug"
	"vending-content-service/internal/transport/httpserver"
	"vending-content-service/internal/transport/httpserver/middleware"
	"vending-content-service/internal/validator"
	"vending-content-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting vending-content-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	// Create the CMS client provider. Clients are built lazily and rotated
	// after ClientMaxAge or an explicit refresh.
	clientProvider := contentful.NewClientProvider(
		contentful.ClientConfig{
			BaseURL:     cfg.Contentful.BaseURL,
			SpaceID:     cfg.Contentful.SpaceID,
			AccessToken: cfg.Contentful.AccessToken,
			Environment: cfg.Contentful.Environment,
			Timeout:     cfg.Contentful.Timeout,
			Retry: contentful.RetryConfig{
				MaxAttempts: cfg.Contentful.Retry.MaxAttempts,
				WaitTime:    cfg.Contentful.Retry.WaitTime,
				MaxWaitTime: cfg.Contentful.Retry.MaxWaitTime,
			},
			CB: contentful.CBConfig{
				MaxRequests:  cfg.Contentful.CB.MaxRequests,
				Interval:     cfg.Contentful.CB.Interval,
				Timeout:      cfg.Contentful.CB.Timeout,
				FailureRatio: cfg.Contentful.CB.FailureRatio,
			},
		},
		cfg.Contentful.ClientMaxAge,
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("list_ttl", cfg.Cache.ListTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create adapters
	transformer := contentful.NewTransformer(log.Logger)
	adapters := service.Adapters{
		ProductTypes:  contentful.NewProductTypeAdapter(clientProvider, transformer, log.Logger),
		BusinessGoals: contentful.NewBusinessGoalAdapter(clientProvider, transformer, log.Logger),
		Machines:      contentful.NewMachineAdapter(clientProvider, transformer, log.Logger),
		Technologies:  contentful.NewTechnologyAdapter(clientProvider, transformer, log.Logger),
		CaseStudies:   contentful.NewCaseStudyAdapter(clientProvider, transformer, log.Logger),
	}

	// Slug resolution
	registry := slug.NewRegistry()
	resolver := slug.NewResolver(registry, log.Logger)

	// Create service
	catalogSvc := service.NewCatalogService(
		adapters,
		resolver,
		clientProvider,
		cache,
		cfg.Cache.ListTTL,
		log.Logger,
	)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Readiness probes: Redis must answer and the CMS must be reachable.
	probes := []middleware.Probe{
		func() bool { return redisClient.Ping(context.Background()).Err() == nil },
		func() bool {
			client, err := clientProvider.Client()
			if err != nil {
				return false
			}

			return client.HealthCheck(context.Background()) == nil
		},
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		catalogSvc,
		registry,
		probes,
		v,
		log.Logger,
	)

	// Start cache warm scheduler with distributed locking
	var scheduler *job.WarmScheduler
	if cfg.Warm.Enabled {
		scheduler = job.NewWarmScheduler(
			catalogSvc,
			job.WarmConfig{
				Interval:  cfg.Warm.Interval,
				Timeout:   cfg.Warm.Timeout,
				OnStartup: cfg.Warm.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Warm.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		if scheduler != nil {
			scheduler.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
