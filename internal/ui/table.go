package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table Styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		Align(lipgloss.Center)

	TableCellStyle = lipgloss.NewStyle().
		Padding(0, 1)

	TableNumberStyle = TableCellStyle.
		Align(lipgloss.Right)

	TableBorderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
)

// NewMetricsTable creates a rounded table whose first column is a label and
// whose remaining columns are right-aligned numbers.
func NewMetricsTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle.Padding(0, 1)
			case col == 0:
				return TableCellStyle
			default:
				return TableNumberStyle
			}
		})
}
