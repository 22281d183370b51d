package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// TableConfig describes a simple text table.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders a left-aligned text table with a bold header row.
// Cell widths are computed per column; rows shorter than the header are
// padded with empty cells.
func RenderTable(config TableConfig) string {
	widths := make([]int, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = len(h)
	}
	for _, row := range config.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var out strings.Builder
	if config.Title != "" {
		out.WriteString(config.Title + "\n\n")
	}

	header := formatRow(config.Headers, widths)
	if styled {
		header = headerStyle.Render(header)
	}
	out.WriteString(header + "\n")

	var sep []string
	for _, w := range widths {
		sep = append(sep, strings.Repeat("-", w))
	}
	out.WriteString(formatRow(sep, widths) + "\n")

	for _, row := range config.Rows {
		padded := make([]string, len(widths))
		copy(padded, row)
		out.WriteString(formatRow(padded, widths) + "\n")
	}
	return out.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
