package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chasilva1997-jpg/FinBot/internal/amqp"
	"github.com/chasilva1997-jpg/FinBot/internal/core"
	"github.com/chasilva1997-jpg/FinBot/internal/sheets/memory"
	"github.com/chasilva1997-jpg/FinBot/internal/storage"
)

func setup(t *testing.T) (*SyncWorker, *storage.Journal, *memory.Store) {
	t.Helper()
	journal, err := storage.NewJournal(filepath.Join(t.TempDir(), "finbot.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })
	store := memory.New()
	return NewSyncWorker(journal, store, 10, nil), journal, store
}

func record(id string) core.Record {
	return core.Record{
		ID:         id,
		UserID:     1,
		Amount:     core.Money{Cents: 500},
		Category:   "Mercado",
		OccurredOn: core.NewDate(2024, time.June, 1),
	}
}

func TestHandleSyncMessage(t *testing.T) {
	w, journal, store := setup(t)
	ctx := context.Background()

	if err := journal.Insert(ctx, record("rec-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := w.HandleSyncMessage(ctx, amqp.NewRecordSyncMessage("rec-1")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows, _ := store.ReadAll(ctx)
	if len(rows) != 1 {
		t.Fatalf("store rows = %d, want 1", len(rows))
	}
	if n, _ := journal.PendingCount(ctx); n != 0 {
		t.Fatalf("pending = %d, want 0", n)
	}
}

func TestHandleSyncMessageMissingRecordIsDropped(t *testing.T) {
	w, _, store := setup(t)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewRecordSyncMessage("ghost")); err != nil {
		t.Fatalf("missing record should ack, got %v", err)
	}
	rows, _ := store.ReadAll(context.Background())
	if len(rows) != 0 {
		t.Fatalf("store rows = %d, want 0", len(rows))
	}
}

func TestProcessPendingSweepsBacklog(t *testing.T) {
	w, journal, store := setup(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := journal.Insert(ctx, record(id)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	if err := w.StartupCheck(ctx); err != nil {
		t.Fatalf("startup check: %v", err)
	}

	rows, _ := store.ReadAll(ctx)
	if len(rows) != 3 {
		t.Fatalf("store rows = %d, want 3", len(rows))
	}
	if n, _ := journal.PendingCount(ctx); n != 0 {
		t.Fatalf("pending = %d, want 0", n)
	}
}
