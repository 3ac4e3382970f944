// Package main is the entry point for the social-content-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"social-content-service/internal/app/service"
	"social-content-service/internal/config"
	"social-content-service/internal/domain"
	"social-content-service/internal/infra/producer"
	rediscache "social-content-service/internal/infra/redis"
	"social-content-service/internal/job"
	"social-content-service/internal/logger"
	"social-content-service/internal/metrics"
	"social-content-service/internal/transport/httpserver"
	"social-content-service/internal/validator"
	"social-content-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
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
			Release:     cfg.Sentry.Release,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting social-content-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Platform rules with configured overrides
	registry, err := cfg.Registry()
	if err != nil {
		log.Fatal("invalid platform rules", zap.Error(err))
	}
	contentValidator := domain.NewValidator(registry, cfg.DomainHeuristics())

	m := metrics.New()

	// Redis backs the validation cache and generation locks; both are
	// optional.
	var (
		cache      domain.Cache
		distLocker locker.DistributedLocker = locker.NopLocker{}
	)
	if cfg.Redis.Enabled {
		redisClient := connectRedis(cfg, log)
		defer func() { _ = redisClient.Close() }()

		distLocker = locker.NewRedisLocker(redisClient, log.Named("locker").Logger, cfg.Generation.LockPrefix)

		if cfg.Cache.Enabled {
			cache = rediscache.NewCache(redisClient, log.Named("cache").Logger, cfg.Cache.KeyPrefix)
			log.Info("cache enabled",
				zap.Duration("validation_ttl", cfg.Cache.ValidationTTL),
				zap.String("key_prefix", cfg.Cache.KeyPrefix),
			)
		}
	} else {
		log.Info("redis disabled; caching and cross-instance locking are off")
	}

	// Create producer client
	producerClient := producer.New(
		producer.ClientConfig{
			BaseURL: cfg.Producer.BaseURL,
			Timeout: cfg.Producer.Timeout,
			Retry: producer.RetryConfig{
				MaxAttempts: cfg.Producer.Retry.MaxAttempts,
				WaitTime:    cfg.Producer.Retry.WaitTime,
				MaxWaitTime: cfg.Producer.Retry.MaxWaitTime,
			},
			CB: producer.CBConfig{
				MaxRequests:   cfg.Producer.CB.MaxRequests,
				Interval:      cfg.Producer.CB.Interval,
				Timeout:       cfg.Producer.CB.Timeout,
				FailureRatio:  cfg.Producer.CB.FailureRatio,
				OnStateChange: m.RecordCircuitState,
			},
		},
		log.Named("producer").Logger,
	)

	// Create services
	validationSvc := service.NewValidationService(contentValidator, cache, cfg.Cache.ValidationTTL, m, log.Named("validation").Logger)
	generationSvc := service.NewGenerationService(
		producerClient,
		validationSvc,
		contentValidator,
		distLocker,
		service.NewStats(),
		m,
		service.GenerationConfig{
			MaxRetries:        cfg.Generation.MaxRetries,
			BackoffBase:       cfg.Generation.BackoffBase,
			BackoffMax:        cfg.Generation.BackoffMax,
			Concurrency:       cfg.Generation.Concurrency,
			FallbackOnFailure: cfg.Generation.FallbackOnFailure,
			LockTTL:           cfg.Generation.LockTTL,
		},
		log.Named("generation").Logger,
	)

	// Producer health monitor feeds readiness
	monitor := job.NewHealthMonitor(
		producerClient,
		job.HealthConfig{
			Interval: cfg.Health.Interval,
			Timeout:  cfg.Health.Timeout,
		},
		m,
		log.Named("health").Logger,
	)
	monitor.Start()

	var rateLimit httpserver.RateLimitConfig
	if cfg.RateLimit.Enabled {
		rateLimit = httpserver.RateLimitConfig{
			Requests:           cfg.RateLimit.Requests,
			Window:             cfg.RateLimit.Window,
			GenerationRequests: cfg.RateLimit.GenerationRequests,
			GenerationWindow:   cfg.RateLimit.GenerationWindow,
		}
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:        cfg.App.Port,
			BodyLimit:   1024 * 1024, // 1MB
			Debug:       cfg.App.Debug,
			DefaultMode: domain.ParseMode(cfg.Validation.DefaultMode),
			RateLimit:   rateLimit,
		},
		httpserver.Services{
			Validation: validationSvc,
			Generation: generationSvc,
		},
		monitor,
		m,
		validator.New(),
		log.Logger,
	)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		monitor.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func connectRedis(cfg *config.Config, log *logger.Logger) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := rediscache.NewClient(ctx, rediscache.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}

	log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	return client
}
