// Package services orchestrates record registration and summary queries on
// top of the store, the journal and the queue.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chasilva1997-jpg/FinBot/internal/amqp"
	"github.com/chasilva1997-jpg/FinBot/internal/core"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	"github.com/chasilva1997-jpg/FinBot/internal/sheets"
	"github.com/chasilva1997-jpg/FinBot/internal/storage"
)

// ExpenseService registers parsed records. In direct mode each record goes
// straight to the store; in queue mode it lands in the local journal and a
// sync message is published for the worker.
type ExpenseService struct {
	store      sheets.RecordAppender
	journal    *storage.Journal
	amqpClient *amqp.Client
	logger     *applog.Logger
}

// NewExpenseService builds a direct-mode service.
func NewExpenseService(store sheets.RecordAppender, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseService{
		store:  store,
		logger: logger.WithComponent(applog.ComponentService),
	}
}

// NewQueuedExpenseService builds a queue-mode service. The AMQP client may
// be nil; the periodic journal sweep then becomes the only sync path.
func NewQueuedExpenseService(journal *storage.Journal, amqpClient *amqp.Client, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseService{
		journal:    journal,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(applog.ComponentService),
	}
}

// Register persists one record and returns a reference to where it went
// (spreadsheet range in direct mode, record id in queue mode). Records are
// validated first; zero-amount records never reach any backend.
func (s *ExpenseService) Register(ctx context.Context, rec core.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := rec.Validate(); err != nil {
		return "", err
	}

	if s.journal != nil {
		if err := s.journal.Insert(ctx, rec); err != nil {
			return "", fmt.Errorf("journal record: %w", err)
		}
		// The sweep picks the record up even if publishing fails, so a
		// broker outage must not fail the user's message.
		if s.amqpClient != nil {
			if err := s.amqpClient.PublishRecordSync(ctx, rec.ID); err != nil {
				s.logger.ErrorContext(ctx, "Failed to publish sync message",
					applog.FieldRecordID, rec.ID, applog.FieldError, err)
			}
		}
		s.logger.InfoContext(ctx, "Record journaled",
			applog.FieldRecordID, rec.ID,
			applog.FieldAmountCents, rec.Amount.Cents,
			applog.FieldCategory, rec.Category)
		return rec.ID, nil
	}

	rowRef, err := s.store.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("append record: %w", err)
	}
	return rowRef, nil
}

// Close releases the journal and queue connections.
func (s *ExpenseService) Close() error {
	var errs []error
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
