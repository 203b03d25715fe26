package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
)

// messageSender is the slice of the Telegram API the reminder needs.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reminder nudges the configured chat on a fixed interval so expenses
// keep getting logged.
type Reminder struct {
	sender   messageSender
	chatID   int64
	interval time.Duration
	text     string
	logger   *applog.Logger
}

func NewReminder(sender messageSender, chatID int64, interval time.Duration, text string, logger *applog.Logger) *Reminder {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Reminder{
		sender:   sender,
		chatID:   chatID,
		interval: interval,
		text:     text,
		logger:   logger.WithComponent(applog.ComponentReminder),
	}
}

// Run ticks until the context is cancelled. A failed send is logged and
// retried on the next tick.
func (r *Reminder) Run(ctx context.Context) error {
	if r.chatID == 0 || r.interval <= 0 {
		r.logger.Info("Reminder disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	r.logger.Info("Reminder started",
		applog.FieldChatID, r.chatID, "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.sender.Send(tgbotapi.NewMessage(r.chatID, r.text)); err != nil {
				r.logger.Warn("Cannot send reminder",
					applog.FieldChatID, r.chatID, applog.FieldError, err)
			}
		}
	}
}
