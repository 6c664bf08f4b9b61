package ui

// base_model.go provides table setup shared by table-based models.

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// InitTable creates and configures a table with proper styling and dimensions.
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)

	ApplyTableStyles(&t)
	t.GotoTop()

	return t
}

// ApplyTableStyles applies the app's table styles.
// Selection is drawn by RenderTableWithSelection, so the table's own
// Selected style stays neutral.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(ColorText).
		Bold(true).
		BorderBottom(false)
	s.Cell = s.Cell.Foreground(ColorText)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
}
