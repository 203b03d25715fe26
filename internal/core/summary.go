package core

import "strings"

// CategoryTotal is an amount aggregated under one display category.
type CategoryTotal struct {
	Name   string
	Amount Money
}

// Summary holds the overall total and the per-category totals in
// first-seen order.
type Summary struct {
	Total      Money
	ByCategory []CategoryTotal
}

// Count returns how many categories the summary groups into.
func (s Summary) Count() int {
	return len(s.ByCategory)
}

// Totals sums the amount column across raw store rows and groups it by
// category. Grouping is case-insensitive; the display name keeps the
// title-cased form of the first occurrence. Rows whose amount cell does not
// parse as a number are skipped rather than failing the whole aggregation.
// Empty input yields a zero total and no groups.
func Totals(rows []Row) Summary {
	byKey := make(map[string]int64)
	var order []string
	names := make(map[string]string)
	var total int64

	for _, row := range rows {
		cents, ok := CentsFromCell(row[ColAmount])
		if !ok {
			continue
		}
		name := TitleCase(row[ColCategory])
		if name == "" {
			name = DefaultCategory
		}
		key := strings.ToLower(name)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
			names[key] = name
		}
		byKey[key] += cents
		total += cents
	}

	out := Summary{Total: Money{Cents: total}}
	for _, key := range order {
		out.ByCategory = append(out.ByCategory, CategoryTotal{
			Name:   names[key],
			Amount: Money{Cents: byKey[key]},
		})
	}
	return out
}
