package profile

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderText writes the report as an aligned table, one line per column.
func RenderText(w io.Writer, r QualityReport) error {
	header := []string{"column", "missing", "missing %", "kinds"}
	rows := [][]string{header}
	for _, col := range r.Columns {
		rows = append(rows, []string{
			col,
			fmt.Sprintf("%d", r.MissingValuesCount[col]),
			fmt.Sprintf("%.1f", r.MissingValuesPercentage[col]),
			kinds(r.DataTypeCounts[col]),
		})
	}
	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	if _, err := fmt.Fprintf(w, "Quality report: %d rows, %d columns\n", r.TotalRows, len(r.Columns)); err != nil {
		return err
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func kinds(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
