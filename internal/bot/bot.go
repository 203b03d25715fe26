// Package bot is the Telegram transport: it feeds inbound text to the
// parser, routes commands to the summary service and sends replies back.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	"github.com/chasilva1997-jpg/FinBot/internal/parser"
	"github.com/chasilva1997-jpg/FinBot/internal/services"
)

// Inbound is one text message as delivered by the transport.
type Inbound struct {
	ChatID   int64
	UserID   int64
	UserName string
	Text     string
	SentAt   time.Time
}

// Handler turns inbound messages into reply text. It holds no per-message
// state; the update channel serializes calls.
type Handler struct {
	expenses  *services.ExpenseService
	summaries *services.SummaryService
	logger    *applog.Logger
}

func NewHandler(expenses *services.ExpenseService, summaries *services.SummaryService, logger *applog.Logger) *Handler {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Handler{
		expenses:  expenses,
		summaries: summaries,
		logger:    logger.WithComponent(applog.ComponentBot),
	}
}

// HandleMessage processes one inbound message and returns the reply to
// send. It never panics and never returns an empty reply; failures come
// back as a short apology so the update loop keeps running.
func (h *Handler) HandleMessage(ctx context.Context, in Inbound) string {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return replyHelp
	}
	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, commandName(text))
	}
	return h.handleExpense(ctx, in)
}

func (h *Handler) handleCommand(ctx context.Context, command string) string {
	h.logger.InfoContext(ctx, "Command received", applog.FieldCommand, command)

	switch command {
	case "start":
		return replyStart
	case "ajuda", "help":
		return replyHelp
	case "total":
		summary, err := h.summaries.Totals(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "Summary query failed", applog.FieldError, err)
			return replySummaryFailure
		}
		return formatTotal(summary)
	case "categorias":
		summary, err := h.summaries.Totals(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "Summary query failed", applog.FieldError, err)
			return replySummaryFailure
		}
		return formatCategories(summary)
	case "resumo":
		summary, err := h.summaries.Totals(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "Summary query failed", applog.FieldError, err)
			return replySummaryFailure
		}
		return formatOverview(summary)
	default:
		return replyUnknownCommand
	}
}

func (h *Handler) handleExpense(ctx context.Context, in Inbound) string {
	rec := parser.Parse(in.Text, in.SentAt)
	rec.UserID = in.UserID
	rec.UserName = in.UserName

	// Policy: a message with no parsable amount is refused here, not in the
	// parser, so nothing bogus reaches the sheet.
	if rec.Amount.Cents == 0 {
		return replyNoAmount
	}

	if _, err := h.expenses.Register(ctx, rec); err != nil {
		h.logger.ErrorContext(ctx, "Failed to register expense",
			applog.FieldUserID, in.UserID,
			applog.FieldAmountCents, rec.Amount.Cents,
			applog.FieldError, err)
		return replyRegisterFailure
	}

	h.summaries.Invalidate()
	h.logger.InfoContext(ctx, "Expense registered",
		applog.FieldUserID, in.UserID,
		applog.FieldAmountCents, rec.Amount.Cents,
		applog.FieldCategory, rec.Category,
		applog.FieldPaymentMethod, rec.PaymentMethod)
	return formatConfirmation(rec)
}

// commandName strips the slash and any @botname suffix.
func commandName(text string) string {
	cmd := strings.Fields(text)[0]
	cmd = strings.TrimPrefix(cmd, "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}

// Bot owns the Telegram API connection and pumps updates into the handler.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *applog.Logger
}

func New(token string, handler *Handler, logger *applog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Bot{
		api:     api,
		handler: handler,
		logger:  logger.WithComponent(applog.ComponentBot),
	}, nil
}

// Username returns the authorized bot account name.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// API exposes the underlying client for the reminder loop.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// RegisterWebhook points Telegram at the given URL.
func (b *Bot) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}
	return nil
}

// Run long-polls Telegram until the context is cancelled. Updates are
// handled one at a time in arrival order.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot authorized, waiting for messages", "account", b.Username())

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.ProcessUpdate(ctx, update)
		}
	}
}

// ProcessUpdate handles one Telegram update; non-message updates are
// ignored. Used by both the polling loop and the webhook server.
func (b *Bot) ProcessUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	msg := update.Message

	in := Inbound{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
		SentAt: msg.Time(),
	}
	if msg.From != nil {
		in.UserID = msg.From.ID
		in.UserName = msg.From.FirstName
	}

	reply := b.handler.HandleMessage(ctx, in)
	b.send(in.ChatID, reply)
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("Cannot send message",
			applog.FieldChatID, chatID, applog.FieldError, err)
	}
}
