package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/finance-tracker/planner/internal/domain/entity"
)

var (
	styleIncome  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleExpense = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
)

// typeStyle colors a value by plan type.
func typeStyle(t entity.PlanType) lipgloss.Style {
	if t == entity.PlanTypeIncome {
		return styleIncome
	}
	return styleExpense
}

// renderTable renders an aligned table with a header separator line.
// Widths are measured on visible characters so styled cells line up.
func renderTable(headers []string, rows [][]string) string {
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, func(s string) string { return styleDim.Render(s) })

	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
