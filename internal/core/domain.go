package core

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Spreadsheet column names, in persisted order. The header row is created
// once when the sheet is empty; ReadAll keys raw rows by these names.
const (
	ColUserID        = "user_id"
	ColUserName      = "nome"
	ColAmount        = "valor"
	ColCategory      = "categoria"
	ColDate          = "data"
	ColPaymentMethod = "forma_pagamento"
	ColNotes         = "observacoes"
)

// Columns returns the header row in persisted order.
func Columns() []string {
	return []string{
		ColUserID, ColUserName, ColAmount, ColCategory,
		ColDate, ColPaymentMethod, ColNotes,
	}
}

// DefaultCategory is used when no category word can be extracted.
const DefaultCategory = "Geral"

type (
	// Date is a calendar date; the time of day is irrelevant for records.
	Date struct {
		time.Time
	}

	// Record is one logged spending event. Records are append-only: once
	// written to the store they are never mutated or deleted.
	Record struct {
		ID            string // assigned at parse time, identifies the record in the journal
		UserID        int64
		UserName      string
		Amount        Money
		Category      string
		OccurredOn    Date
		PaymentMethod string
		Notes         string
	}

	// Row is one raw store row keyed by column name.
	Row map[string]string
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroAmount    = errors.New("amount is zero")
	ErrEmptyCategory = errors.New("empty category")
)

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// String renders the date the way it is stored in the sheet (ISO 8601).
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Validate checks a record before it is persisted. Zero amounts are legal
// at parse time but rejected here: the transport decides whether to refuse
// the message or not, the store never sees a zero-amount row.
func (r Record) Validate() error {
	if r.Amount.Cents == 0 {
		return ErrZeroAmount
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return r.OccurredOn.Validate()
}

// TitleCase normalizes a label for display and grouping ("padaria" ->
// "Padaria"), accent-aware for Portuguese words.
func TitleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(strings.ToLower(strings.TrimSpace(s)))
}
