package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/chasilva1997-jpg/FinBot/internal/amqp"
	"github.com/chasilva1997-jpg/FinBot/internal/config"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	gsheet "github.com/chasilva1997-jpg/FinBot/internal/sheets/google"
	"github.com/chasilva1997-jpg/FinBot/internal/storage"
	"github.com/chasilva1997-jpg/FinBot/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting finbot-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	journal, err := storage.NewJournal(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open journal", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer journal.Close()

	sheetsClient, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   cfg.SheetID,
		SheetName:       cfg.SheetName,
		CredentialsJSON: cfg.CredentialsJSON,
		CredentialsFile: cfg.CredentialsFile,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client",
			applog.FieldError, err, applog.FieldSheetID, cfg.SheetID)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", applog.FieldSheetID, cfg.SheetID)

	syncWorker := worker.NewSyncWorker(journal, sheetsClient, cfg.SyncBatchSize, logger)

	// Drain whatever accumulated while the worker was down.
	if err := syncWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup sync check failed", applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// Consume sync messages, reconnecting on broker failures.
	g.Go(func() error {
		dial := func() (*amqp.Client, error) {
			return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		}
		return amqp.ConsumeWithReconnect(gctx, dial, syncWorker.HandleSyncMessage)
	})

	// Periodic sweep catches records whose message was lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := syncWorker.ProcessPending(gctx); err != nil {
					logger.Error("Periodic sync failed", applog.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
