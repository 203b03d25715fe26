// Package sheets defines the ports for the expense store boundary.
package sheets

import (
	"context"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

type (
	// RecordAppender appends one record as a new row. The store is
	// append-only from this system's perspective.
	RecordAppender interface {
		Append(ctx context.Context, r core.Record) (rowRef string, err error)
	}

	// RowReader returns every stored row as a column-name -> cell mapping,
	// in sheet order.
	RowReader interface {
		ReadAll(ctx context.Context) ([]core.Row, error)
	}

	// Store combines both sides of the boundary.
	Store interface {
		RecordAppender
		RowReader
	}
)
