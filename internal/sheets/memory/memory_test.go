package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

func TestStoreAppendAndReadAll(t *testing.T) {
	s := New()

	ref, err := s.Append(context.Background(), core.Record{
		UserID:        42,
		UserName:      "Ana",
		Amount:        core.Money{Cents: 1250},
		Category:      "Padaria",
		OccurredOn:    core.NewDate(2024, time.March, 1),
		PaymentMethod: "Pix",
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows, err := s.ReadAll(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("unexpected read: rows=%v err=%v", rows, err)
	}
	if rows[0][core.ColAmount] != "12.50" || rows[0][core.ColDate] != "2024-03-01" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestStoreRejectsInvalidRecord(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Record{Category: "Padaria"})
	if err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}

func TestReadAllReturnsCopies(t *testing.T) {
	s := New()
	s.Seed([]core.Row{{core.ColAmount: "10", core.ColCategory: "Food"}})

	rows, _ := s.ReadAll(context.Background())
	rows[0][core.ColAmount] = "999"

	again, _ := s.ReadAll(context.Background())
	if again[0][core.ColAmount] != "10" {
		t.Fatal("ReadAll leaked internal state")
	}
}
