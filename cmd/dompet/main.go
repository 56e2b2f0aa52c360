package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"dompet/internal/ai"
	"dompet/internal/config"
	"dompet/internal/events"
	"dompet/internal/format"
	apphttp "dompet/internal/http"
	"dompet/internal/insight"
	"dompet/internal/kv"
	"dompet/internal/scheduler"
	"dompet/internal/store"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional, for local development
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := kv.Open(ctx, kv.BackendConfig{
		Type:         cfg.DataBackend,
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresURL:  cfg.PostgresURL,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer backend.Close()

	// Activity event publishing is optional; run without a broker when
	// none is configured or reachable.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP publisher, continuing without events", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info("Initialized AMQP publisher",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	formatter := format.New(format.Config{
		Locale:         cfg.Locale,
		Symbol:         cfg.CurrencySymbol,
		FractionDigits: cfg.FractionDigits,
	})

	st := store.New(backend, formatter, publisher)
	if err := st.Load(ctx); err != nil {
		logger.Error("Failed to load store", "error", err)
		os.Exit(1)
	}

	generator := insight.NewGenerator(formatter)

	var narrator *ai.Client
	if cfg.OpenAIAPIKey != "" {
		narrator = ai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		logger.Info("Initialized AI insight narrator")
	}

	refresher := scheduler.New(st, generator, cfg.RefreshInterval)
	st.SetNotifier(refresher)

	srv := apphttp.NewServer(":"+cfg.Port, st, generator, formatter, narrator)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting dompet server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		refresher.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
