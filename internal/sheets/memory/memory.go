// Package memory is a thread-safe in-memory expense store used in tests
// and local runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Row
}

func New() *Store {
	return &Store{}
}

// Seed preloads raw rows, mimicking a spreadsheet with existing data.
func (s *Store) Seed(rows []core.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, core.Row{
		core.ColUserID:        strconv.FormatInt(r.UserID, 10),
		core.ColUserName:      r.UserName,
		core.ColAmount:        r.Amount.String(),
		core.ColCategory:      r.Category,
		core.ColDate:          r.OccurredOn.String(),
		core.ColPaymentMethod: r.PaymentMethod,
		core.ColNotes:         r.Notes,
	})
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// ReadAll returns a copy of every stored row in append order.
func (s *Store) ReadAll(_ context.Context) ([]core.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Row, len(s.rows))
	for i, row := range s.rows {
		cp := make(core.Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}
