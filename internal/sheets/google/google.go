// Package google implements the expense store on a Google Sheets
// spreadsheet using a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
	ports "github.com/chasilva1997-jpg/FinBot/internal/sheets"
)

// Retry policy for transient spreadsheet failures.
const (
	retryAttempts = 4
	retryDelay    = 500 * time.Millisecond
)

// Config holds everything the client needs; nothing is read from the
// environment here.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *applog.Logger
}

var _ ports.Store = (*Client)(nil)

// New creates a Sheets client and bootstraps the header row if the sheet is
// still empty.
func New(ctx context.Context, cfg Config, logger *applog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentSheets)

	credentials, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Página1"
	}

	c := &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}

	if err := c.ensureHeader(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap header row: %w", err)
	}
	return c, nil
}

func resolveCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// ensureHeader writes the column header once when the sheet has no rows at
// all. Existing sheets are left untouched.
func (c *Client) ensureHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:G1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	header := make([]any, 0, len(core.Columns()))
	for _, col := range core.Columns() {
		header = append(header, col)
	}
	vr := &gsheet.ValueRange{Values: [][]any{header}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	c.logger.InfoContext(ctx, "Created header row", applog.FieldSheetID, c.spreadsheetID)
	return nil
}

// Append writes one record as a new row. Transient failures (rate limits,
// 5xx) are retried a bounded number of times with increasing delay; after
// exhaustion the last error is returned and the record is not persisted.
func (c *Client) Append(ctx context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	row := []any{
		strconv.FormatInt(r.UserID, 10),
		r.UserName,
		r.Amount.String(),
		r.Category,
		r.OccurredOn.String(),
		r.PaymentMethod,
		r.Notes,
	}
	writeRange := fmt.Sprintf("%s!A:G", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	var updatedRange string
	err := retry.Do(
		func() error {
			resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, writeRange, vr).
				ValueInputOption("USER_ENTERED").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).
				Do()
			if err != nil {
				return err
			}
			if resp.Updates != nil {
				updatedRange = resp.Updates.UpdatedRange
			}
			return nil
		},
		retry.RetryIf(func(err error) bool {
			if isTransient(err) {
				c.logger.WarnContext(ctx, "Transient sheets failure, will retry",
					applog.FieldError, err)
				return true
			}
			return false
		}),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}

	c.logger.InfoContext(ctx, "Record appended",
		applog.FieldRowRef, updatedRange,
		applog.FieldAmountCents, r.Amount.Cents,
		applog.FieldCategory, r.Category)
	return updatedRange, nil
}

// ReadAll returns every data row keyed by the header row. The header may
// have been edited by hand; unknown columns are carried through as-is and
// missing cells come back empty.
func (c *Client) ReadAll(ctx context.Context) ([]core.Row, error) {
	rng := fmt.Sprintf("%s!A:G", c.sheetName)

	var resp *gsheet.ValueRange
	err := retry.Do(
		func() error {
			var err error
			resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
			return err
		},
		retry.RetryIf(isTransient),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return rowsFromValues(resp.Values), nil
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}
