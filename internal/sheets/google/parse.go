package google

import (
	"fmt"
	"strings"

	"github.com/chasilva1997-jpg/FinBot/internal/core"
)

// rowsFromValues maps raw sheet values to rows keyed by the header row.
// The first row is the header; when the sheet has no rows at all (or only a
// header) there is nothing to return.
func rowsFromValues(values [][]any) []core.Row {
	if len(values) < 2 {
		return nil
	}
	header := toStrings(values[0])
	rows := make([]core.Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		cells := toStrings(raw)
		row := make(core.Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
