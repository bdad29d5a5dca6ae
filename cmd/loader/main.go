package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"

	"github.com/mittagsplan/loader/internal/core/config"
	"github.com/mittagsplan/loader/internal/core/retrier"
	"github.com/mittagsplan/loader/internal/infra/store"
	filestore "github.com/mittagsplan/loader/internal/infra/store/file"
	memstore "github.com/mittagsplan/loader/internal/infra/store/memory"
	redisstore "github.com/mittagsplan/loader/internal/infra/store/redis"
	"github.com/mittagsplan/loader/internal/loader"
	"github.com/mittagsplan/loader/internal/source"
	"github.com/mittagsplan/loader/internal/source/europlaza"
	"github.com/mittagsplan/loader/internal/source/saicookart"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file (defaults apply when empty)")
	contentDir := flag.String("content-dir", "", "Override the content output directory")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// A .env file is optional; credentials may come from the real env.
	_ = godotenv.Load()

	// Load configuration first (before setting up logger)
	var cfg *config.AppConfig
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			stylelog.InitDefault()
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}
	if *contentDir != "" {
		cfg.ContentDir = *contentDir
	}

	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})

	// Fatal configuration errors stop the run before any network call.
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	log := slog.Default().With("run_id", uuid.NewString())

	// Metadata store: redis when configured, process-local otherwise.
	var meta store.MetaStore
	if cfg.Redis.URL != "" {
		redisMeta, err := redisstore.NewMetaStore(cfg.Redis)
		if err != nil {
			log.Error("Failed to connect metadata store", "error", err)
			os.Exit(1)
		}
		defer redisMeta.Close()
		meta = redisMeta
	} else {
		meta = memstore.NewMetaStore()
	}

	docs := filestore.NewDocumentStore(cfg.ContentDir)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	sources := []source.Source{
		europlaza.New(europlaza.Config{
			TokenURL: cfg.Sources.Europlaza.TokenURL,
			APIURL:   cfg.Sources.Europlaza.APIURL,
			Credentials: europlaza.Credentials{
				Username: cfg.Sources.Europlaza.Username,
				Password: cfg.Sources.Europlaza.Password,
			},
			PageLimit: cfg.Sources.Europlaza.PageLimit,
		}, httpClient, meta, log.With("source", "europlaza"), loc),
		saicookart.New(saicookart.Config{
			APIURL: cfg.Sources.SaiCookArt.APIURL,
		}, httpClient, log.With("source", "sai-cookart")),
	}

	policy := retrier.Policy{
		MaxAttempts:     cfg.Retry.MaxAttempts,
		InitialDelay:    cfg.Retry.InitialDelay,
		MaxDelay:        cfg.Retry.MaxDelay,
		BackoffMultiple: cfg.Retry.BackoffMultiple,
		Jitter:          cfg.Retry.Jitter,
		AttemptTimeout:  cfg.Retry.AttemptTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := loader.New(docs, policy, log, sources...)
	if err := l.Run(ctx); err != nil {
		log.Error("Menu load failed", "error", err)
		os.Exit(1)
	}
}
