package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/chasilva1997-jpg/FinBot/internal/amqp"
	"github.com/chasilva1997-jpg/FinBot/internal/bot"
	"github.com/chasilva1997-jpg/FinBot/internal/config"
	apphttp "github.com/chasilva1997-jpg/FinBot/internal/http"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	"github.com/chasilva1997-jpg/FinBot/internal/services"
	ports "github.com/chasilva1997-jpg/FinBot/internal/sheets"
	gsheet "github.com/chasilva1997-jpg/FinBot/internal/sheets/google"
	mem "github.com/chasilva1997-jpg/FinBot/internal/sheets/memory"
	"github.com/chasilva1997-jpg/FinBot/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting finbot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Data backend: Google Sheets in production, memory for local runs.
	var store ports.Store
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.New(ctx, gsheet.Config{
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
		store = cli
		logger.Info("Initialized Google Sheets backend", applog.FieldSheetID, cfg.SheetID)
	default:
		store = mem.New()
		logger.Info("Initialized memory backend")
	}

	// Write path: append straight to the backend, or journal locally and let
	// the worker push rows to the sheet.
	var expenses *services.ExpenseService
	switch cfg.SyncMode {
	case "queue":
		journal, err := storage.NewJournal(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open journal", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}

		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The journal sweep still syncs records, so a broker outage at
			// startup is not fatal.
			logger.Warn("AMQP unavailable, relying on periodic sweep", applog.FieldError, err)
			amqpClient = nil
		}
		expenses = services.NewQueuedExpenseService(journal, amqpClient, logger)
		defer expenses.Close()
		logger.Info("Queue sync mode enabled", "path", cfg.SQLiteDBPath)
	default:
		expenses = services.NewExpenseService(store, logger)
	}

	summaries := services.NewSummaryService(store, cfg.SummaryCacheTTL, logger)
	handler := bot.NewHandler(expenses, summaries, logger)

	b, err := bot.New(cfg.TelegramToken, handler, logger)
	if err != nil {
		logger.Error("Failed to connect to Telegram", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Telegram bot authorized", "account", b.Username())

	g, gctx := errgroup.WithContext(ctx)

	if cfg.WebhookEnabled() {
		if err := b.RegisterWebhook(cfg.WebhookURL + "/webhook/" + cfg.WebhookSecret); err != nil {
			logger.Error("Failed to register webhook", applog.FieldError, err)
			os.Exit(1)
		}
		srv := apphttp.NewServer(":"+cfg.Port, b, cfg.WebhookSecret, logger)
		g.Go(func() error { return srv.Run(gctx) })
		logger.Info("Webhook mode enabled", "url", cfg.WebhookURL)
	} else {
		srv := apphttp.NewServer(":"+cfg.Port, nil, "", logger)
		g.Go(func() error { return srv.Run(gctx) })
		g.Go(func() error { return b.Run(gctx) })
	}

	reminder := bot.NewReminder(b.API(), cfg.AdminChatID, cfg.ReminderInterval, cfg.ReminderText, logger)
	g.Go(func() error { return reminder.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}
