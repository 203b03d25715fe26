// Package storage keeps a local SQLite journal of records waiting to be
// synced to the spreadsheet. In queue mode every append lands here first;
// the worker drains the journal into the store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

var ErrNotFound = errors.New("record not found")

type Journal struct {
	db *sql.DB
}

func NewJournal(dbPath string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Insert stores a record as pending sync.
func (j *Journal) Insert(ctx context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO records (id, user_id, user_name, amount_cents, category, occurred_on, payment_method, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.UserName, r.Amount.Cents, r.Category,
		r.OccurredOn.String(), r.PaymentMethod, r.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Get loads one record by id.
func (j *Journal) Get(ctx context.Context, id string) (core.Record, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, user_id, user_name, amount_cents, category, occurred_on, payment_method, notes
		FROM records WHERE id = ?`, id)
	return scanRecord(row)
}

// ListPending returns up to limit records that have not been synced yet,
// oldest first.
func (j *Journal) ListPending(ctx context.Context, limit int) ([]core.Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, user_id, user_name, amount_cents, category, occurred_on, payment_method, notes
		FROM records WHERE synced_at IS NULL
		ORDER BY created_at ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MarkSynced records the spreadsheet row reference and the sync time.
func (j *Journal) MarkSynced(ctx context.Context, id, rowRef string) error {
	res, err := j.db.ExecContext(ctx,
		`UPDATE records SET row_ref = ?, synced_at = CURRENT_TIMESTAMP WHERE id = ?`,
		rowRef, id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingCount reports how many records still wait for sync.
func (j *Journal) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE synced_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending records: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec        core.Record
		cents      int64
		occurredOn string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.UserName, &cents,
		&rec.Category, &occurredOn, &rec.PaymentMethod, &rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("scan record: %w", err)
	}
	rec.Amount = core.Money{Cents: cents}
	if t, err := time.Parse("2006-01-02", occurredOn); err == nil {
		rec.OccurredOn = core.DateOf(t)
	}
	return rec, nil
}
