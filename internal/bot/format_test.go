package bot

import (
	"strings"
	"testing"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

func sampleSummary() core.Summary {
	return core.Summary{
		Total: core.Money{Cents: 2000},
		ByCategory: []core.CategoryTotal{
			{Name: "Mercado", Amount: core.Money{Cents: 1450}},
			{Name: "Padaria", Amount: core.Money{Cents: 550}},
		},
	}
}

func TestFormatCategoriesListsEachCategory(t *testing.T) {
	got := formatCategories(sampleSummary())

	for _, want := range []string{"• Mercado: R$14.50", "• Padaria: R$5.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatCategories missing %q:\n%s", want, got)
		}
	}
}

func TestFormatOverviewShowsTotalAndCategories(t *testing.T) {
	got := formatOverview(sampleSummary())

	for _, want := range []string{"Total: R$20.00", "• Mercado: R$14.50", "• Padaria: R$5.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatOverview missing %q:\n%s", want, got)
		}
	}
}

func TestFormatEmptySummary(t *testing.T) {
	empty := core.Summary{}
	for name, got := range map[string]string{
		"total":      formatTotal(empty),
		"categories": formatCategories(empty),
		"overview":   formatOverview(empty),
	} {
		if !strings.Contains(got, "Nenhum gasto registrado") {
			t.Errorf("%s on empty summary = %q", name, got)
		}
	}
}
