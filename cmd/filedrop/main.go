package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/filedrop/api"
	"github.com/dmitrymomot/filedrop/pkg/config"
	"github.com/dmitrymomot/filedrop/pkg/httpserver"
	"github.com/dmitrymomot/filedrop/pkg/logger"
	"github.com/dmitrymomot/filedrop/storage"
	"github.com/dmitrymomot/filedrop/upload"
)

type appConfig struct {
	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`

	// DomainPrefix is the public host serving stored assets, without
	// scheme or trailing slash.
	DomainPrefix string `env:"DOMAIN_PREFIX" envDefault:"localhost:8080"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"`
	StorageRoot   string `env:"STORAGE_ROOT" envDefault:"./files"`

	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION"`
	S3AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`
	S3Endpoint    string `env:"S3_ENDPOINT"`

	Upload upload.Config
	HTTP   httpserver.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("service terminated", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithService("filedrop"),
	)
	logger.SetAsDefault(log)

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}
	if err := store.Healthcheck(ctx); err != nil {
		return fmt.Errorf("storage probe: %w", err)
	}

	pipe := upload.NewPipeline(cfg.Upload, store, log)

	log.Info("starting",
		slog.String("domain", cfg.DomainPrefix),
		slog.String("driver", cfg.StorageDriver),
		slog.String("max_upload_size", cfg.Upload.MaxUploadSize.String()),
		slog.Any("allowed_extensions", cfg.Upload.AllowedExtensions),
	)

	handler := api.Router(api.RouterOptions{
		Pipeline: pipe,
		Storage:  store,
		MaxSize:  cfg.Upload.MaxUploadSize.Bytes(),
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, handler)
}

func newStorage(ctx context.Context, cfg appConfig) (storage.Storage, error) {
	baseURL := "https://" + cfg.DomainPrefix

	switch cfg.StorageDriver {
	case "local", "":
		return storage.NewLocalStorage(cfg.StorageRoot, baseURL)
	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:      cfg.S3Bucket,
			Region:      cfg.S3Region,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretKey,
			Endpoint:    cfg.S3Endpoint,
			BaseURL:     baseURL,
		})
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", storage.ErrInvalidConfig, cfg.StorageDriver)
	}
}
