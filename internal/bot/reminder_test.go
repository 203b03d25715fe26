package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	r.sent = append(r.sent, msg)
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestReminderSendsOnTick(t *testing.T) {
	sender := &recordingSender{}
	rem := NewReminder(sender, 42, 10*time.Millisecond, "Não esqueça de registrar seus gastos!", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rem.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for sender.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 reminders, got %d", sender.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if sender.sent[0].ChatID != 42 {
		t.Errorf("reminder chat = %d, want 42", sender.sent[0].ChatID)
	}
	if sender.sent[0].Text == "" {
		t.Error("reminder text is empty")
	}
}

func TestReminderDisabledWithoutChat(t *testing.T) {
	sender := &recordingSender{}
	rem := NewReminder(sender, 0, 10*time.Millisecond, "ping", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rem.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want deadline exceeded", err)
	}
	if sender.count() != 0 {
		t.Errorf("disabled reminder sent %d messages", sender.count())
	}
}
