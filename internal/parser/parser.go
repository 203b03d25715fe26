// Package parser turns one line of free text into a structured expense
// record. It is a best-effort heuristic extractor, not a grammar: rules run
// in a fixed order (amount, payment method, category, date, notes) and each
// rule is pure. Ambiguous inputs produce a plausible record, never an error.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

var (
	reNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	reWord   = regexp.MustCompile(`[\p{Latin}]+`)
	reDate   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2}`)
)

// paymentVocabulary is the fixed ordered payment-method vocabulary. The
// scan checks entries in this order and the first match wins, so accented
// and unaccented spellings of the same method sit next to each other.
var paymentVocabulary = []struct {
	token     string
	canonical string
}{
	{"cartao", "Cartão"},
	{"cartão", "Cartão"},
	{"dinheiro", "Dinheiro"},
	{"pix", "Pix"},
	{"transferencia", "Transferência"},
	{"transferência", "Transferência"},
	{"boleto", "Boleto"},
}

// Parse extracts an expense record from a message. The fallback timestamp
// supplies the date when the message carries no explicit date token.
//
// A message with no numeric token yields amount 0; deciding whether a
// zero-amount record is acceptable is the caller's job.
func Parse(text string, fallback time.Time) core.Record {
	rec := core.Record{
		Amount:     core.Money{Cents: extractAmount(text)},
		OccurredOn: extractDate(text, fallback),
	}

	method, matched := extractPaymentMethod(text)
	rec.PaymentMethod = method

	category := extractCategory(text, matched)
	rec.Category = core.TitleCase(category)
	if rec.Category == "" {
		rec.Category = core.DefaultCategory
	}

	rec.Notes = extractNotes(text, category, matched)
	return rec
}

// extractAmount takes the first numeric token, left to right. Digits inside
// an explicit date token are skipped so "Mercado 01/03/2024" does not read
// as one cent, but a message that is nothing but a date still yields 0.
func extractAmount(text string) int64 {
	stripped := reDate.ReplaceAllString(text, " ")
	tok := reNumber.FindString(stripped)
	if tok == "" {
		return 0
	}
	cents, err := core.ParseDecimalToCents(tok)
	if err != nil {
		return 0
	}
	return cents
}

// extractPaymentMethod returns the canonical method name and the vocabulary
// token that matched (needed to exclude the word from category and notes).
// Exact substring match runs first; when nothing matches, standalone words
// within Levenshtein distance 1 of a vocabulary token are accepted so
// common typos ("cartaoo 30") still register.
func extractPaymentMethod(text string) (canonical, matched string) {
	lower := strings.ToLower(text)
	for _, entry := range paymentVocabulary {
		if strings.Contains(lower, entry.token) {
			return entry.canonical, entry.token
		}
	}
	for _, word := range reWord.FindAllString(lower, -1) {
		if len([]rune(word)) < 3 {
			continue
		}
		for _, entry := range paymentVocabulary {
			if levenshtein.ComputeDistance(word, entry.token) == 1 {
				return entry.canonical, word
			}
		}
	}
	return "", ""
}

// extractCategory picks the first alphabetic word that is not the matched
// payment-method token. This misfires when free text precedes the real
// category noun; that is a known limitation of the heuristic, not a bug.
func extractCategory(text, paymentToken string) string {
	for _, word := range reWord.FindAllString(text, -1) {
		if paymentToken != "" && strings.EqualFold(word, paymentToken) {
			continue
		}
		return word
	}
	return ""
}

func extractDate(text string, fallback time.Time) core.Date {
	tok := reDate.FindString(text)
	if tok != "" {
		layout := "2006-01-02"
		if strings.Contains(tok, "/") {
			layout = "02/01/2006"
		}
		if t, err := time.Parse(layout, tok); err == nil {
			return core.DateOf(t)
		}
	}
	return core.DateOf(fallback)
}

// extractNotes removes numeric tokens plus the first occurrence of the
// category and payment-method words, then collapses whitespace and drops
// punctuation-only leftovers (a consumed date leaves "//" behind).
func extractNotes(text, category, paymentToken string) string {
	s := reNumber.ReplaceAllString(text, " ")
	s = removeFirstFold(s, category)
	s = removeFirstFold(s, paymentToken)

	var kept []string
	for _, tok := range strings.Fields(s) {
		if reWord.MatchString(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// removeFirstFold removes the first case-insensitive occurrence of word.
func removeFirstFold(s, word string) string {
	if word == "" {
		return s
	}
	lower := strings.ToLower(s)
	idx := strings.Index(lower, strings.ToLower(word))
	if idx < 0 {
		return s
	}
	return s[:idx] + " " + s[idx+len(word):]
}
