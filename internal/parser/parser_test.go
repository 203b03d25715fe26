package parser

import (
	"testing"
	"time"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

var noon = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestParseTypicalMessage(t *testing.T) {
	rec := Parse("Padaria 12,50 pix", noon)

	if rec.Amount.Cents != 1250 {
		t.Fatalf("amount = %d, want 1250", rec.Amount.Cents)
	}
	if rec.Category != "Padaria" {
		t.Fatalf("category = %q", rec.Category)
	}
	if rec.PaymentMethod != "Pix" {
		t.Fatalf("payment = %q", rec.PaymentMethod)
	}
	if rec.OccurredOn.String() != "2024-06-15" {
		t.Fatalf("date = %s", rec.OccurredOn)
	}
	if rec.Notes != "" {
		t.Fatalf("notes = %q, want empty", rec.Notes)
	}
}

func TestParseAmountVariants(t *testing.T) {
	cases := []struct {
		text  string
		cents int64
	}{
		{"Mercado 50", 5000},
		{"Mercado 50.25", 5025},
		{"Mercado 50,25", 5025},
		{"Mercado 12 e depois 30", 1200}, // first number wins
		{"sem valor nenhum", 0},
	}
	for _, tc := range cases {
		if got := Parse(tc.text, noon).Amount.Cents; got != tc.cents {
			t.Errorf("%q: amount = %d, want %d", tc.text, got, tc.cents)
		}
	}
}

func TestParsePaymentMethodVocabulary(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Padaria 10 cartao", "Cartão"},
		{"Padaria 10 cartão", "Cartão"},
		{"Padaria 10 dinheiro", "Dinheiro"},
		{"Padaria 10 PIX", "Pix"},
		{"Padaria 10 transferencia", "Transferência"},
		{"Padaria 10 transferência", "Transferência"},
		{"Padaria 10 boleto", "Boleto"},
		{"Padaria 10", ""},
		// vocabulary order wins when two synonyms are present
		{"boleto 10 cartao", "Cartão"},
	}
	for _, tc := range cases {
		if got := Parse(tc.text, noon).PaymentMethod; got != tc.want {
			t.Errorf("%q: payment = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestParsePaymentMethodTypoTolerance(t *testing.T) {
	rec := Parse("Padaria 10 cartaoo", noon)
	if rec.PaymentMethod != "Cartão" {
		t.Fatalf("payment = %q, want Cartão", rec.PaymentMethod)
	}
	// the typo word must not become the category
	if rec.Category != "Padaria" {
		t.Fatalf("category = %q, want Padaria", rec.Category)
	}
}

func TestParseNoDigits(t *testing.T) {
	rec := Parse("lunch with friends", noon)
	if rec.Amount.Cents != 0 {
		t.Fatalf("amount = %d, want 0", rec.Amount.Cents)
	}
	if rec.Category != "Lunch" {
		t.Fatalf("category = %q, want Lunch", rec.Category)
	}
	if rec.PaymentMethod != "" {
		t.Fatalf("payment = %q, want empty", rec.PaymentMethod)
	}
	if rec.Notes != "with friends" {
		t.Fatalf("notes = %q", rec.Notes)
	}
}

func TestParseExplicitDate(t *testing.T) {
	rec := Parse("Market 50 01/03/2024", noon)
	if rec.OccurredOn.String() != "2024-03-01" {
		t.Fatalf("date = %s, want 2024-03-01", rec.OccurredOn)
	}
	if rec.Amount.Cents != 5000 {
		t.Fatalf("amount = %d, want 5000", rec.Amount.Cents)
	}
	if rec.Notes != "" {
		t.Fatalf("notes = %q, want empty", rec.Notes)
	}

	iso := Parse("Market 50 2024-03-01", noon)
	if iso.OccurredOn.String() != "2024-03-01" {
		t.Fatalf("iso date = %s", iso.OccurredOn)
	}
}

func TestParseCategoryDefaultsToGeral(t *testing.T) {
	rec := Parse("12,50 pix", noon)
	if rec.Category != core.DefaultCategory {
		t.Fatalf("category = %q, want %q", rec.Category, core.DefaultCategory)
	}
}

func TestParsePaymentWordIsNotCategory(t *testing.T) {
	rec := Parse("pix 25 farmacia", noon)
	if rec.Category != "Farmacia" {
		t.Fatalf("category = %q, want Farmacia", rec.Category)
	}
	if rec.PaymentMethod != "Pix" {
		t.Fatalf("payment = %q, want Pix", rec.PaymentMethod)
	}
}

func TestParseNotesResidue(t *testing.T) {
	rec := Parse("Mercado 80,10 cartão compras da semana", noon)
	if rec.Notes != "compras da semana" {
		t.Fatalf("notes = %q", rec.Notes)
	}
}
