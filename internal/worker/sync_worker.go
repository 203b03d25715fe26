// Package worker drains the local record journal into the spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/chasilva1997-jpg/FinBot/internal/amqp"
	"github.com/chasilva1997-jpg/FinBot/internal/core"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	"github.com/chasilva1997-jpg/FinBot/internal/sheets"
	"github.com/chasilva1997-jpg/FinBot/internal/storage"
)

type SyncWorker struct {
	journal   *storage.Journal
	store     sheets.RecordAppender
	batchSize int
	logger    *applog.Logger
}

func NewSyncWorker(journal *storage.Journal, store sheets.RecordAppender, batchSize int, logger *applog.Logger) *SyncWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &SyncWorker{
		journal:   journal,
		store:     store,
		batchSize: batchSize,
		logger:    logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleSyncMessage processes one sync request from the queue. A record
// that has vanished from the journal is dropped (acked) rather than
// requeued forever.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	rec, err := w.journal.Get(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		w.logger.WarnContext(ctx, "Record missing from journal, dropping message",
			applog.FieldRecordID, msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	return w.syncRecord(ctx, rec)
}

// ProcessPending sweeps the journal for records the queue missed and syncs
// one batch of them.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.journal.ListPending(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Processing pending records", "count", len(pending))
	for _, rec := range pending {
		if err := w.syncRecord(ctx, rec); err != nil {
			// Keep going; the next sweep retries what failed.
			w.logger.ErrorContext(ctx, "Failed to sync pending record",
				applog.FieldRecordID, rec.ID, applog.FieldError, err)
		}
	}
	return nil
}

// StartupCheck reports the backlog size so operators see stale journals in
// the logs right away, then runs one sweep.
func (w *SyncWorker) StartupCheck(ctx context.Context) error {
	n, err := w.journal.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("count pending: %w", err)
	}
	if n > 0 {
		w.logger.InfoContext(ctx, "Found unsynced records from previous run", "count", n)
	}
	return w.ProcessPending(ctx)
}

func (w *SyncWorker) syncRecord(ctx context.Context, rec core.Record) error {
	rowRef, err := w.store.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("append to store: %w", err)
	}
	if err := w.journal.MarkSynced(ctx, rec.ID, rowRef); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	w.logger.InfoContext(ctx, "Record synced",
		applog.FieldRecordID, rec.ID, applog.FieldRowRef, rowRef)
	return nil
}
