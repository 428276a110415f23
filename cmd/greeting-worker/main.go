package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/greeting-machine/internal/config"
	"github.com/aescanero/greeting-machine/internal/greeting"
	"github.com/aescanero/greeting-machine/internal/locale"
	"github.com/aescanero/greeting-machine/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting greeting worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	machine, err := initMachine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize greeting machine", zap.Error(err))
	}
	logger.Info("greeting machine initialized",
		zap.String("default_category", string(machine.DefaultCategory())),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	metrics := worker.NewMetrics(prometheus.DefaultRegisterer)

	w := worker.NewWorker(cfg, redisClient, machine, metrics, logger)

	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, prometheus.DefaultGatherer, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("greeting worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	logger.Info("worker stopped")
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// initMachine builds the resolver and greeting machine, layering the
// optional locales directory and templates file over the built-in data
func initMachine(cfg *config.Config, logger *zap.Logger) (*greeting.Machine, error) {
	dict := locale.Default()
	if cfg.LocalesDir != "" {
		extra, err := locale.LoadDir(cfg.LocalesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load locales from %s: %w", cfg.LocalesDir, err)
		}
		dict = dict.Merge(extra)
		logger.Info("loaded locales", zap.String("dir", cfg.LocalesDir), zap.Strings("languages", extra.Languages()))
	}

	resolver := locale.NewResolver(dict,
		locale.WithDefaultLanguage(cfg.DefaultLocale),
		locale.WithMissingKeyHandler(func(localeTag, key string) {
			logger.Warn("missing translation", zap.String("locale", localeTag), zap.String("key", key))
		}),
	)

	category, err := cfg.Category()
	if err != nil {
		return nil, err
	}

	machine := greeting.NewMachine(resolver, logger, greeting.WithDefaultCategory(category))

	if cfg.TemplatesFile != "" {
		templates, err := greeting.LoadTemplatesFile(cfg.TemplatesFile)
		if err != nil {
			return nil, err
		}
		if err := machine.RegisterTemplates(templates); err != nil {
			return nil, err
		}
	}

	return machine, nil
}
