package ui

// view_helpers.go provides common View() rendering helpers.

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StringWidth returns the display width of s, ignoring ANSI escape codes
func StringWidth(s string) int {
	return lipgloss.Width(s)
}

// truncateToWidth cuts s to at most width display cells
func truncateToWidth(s string, width int) string {
	return ansi.Truncate(s, width, "")
}

// truncateCell shortens s to fit a cell, marking the cut with "..."
func truncateCell(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return truncateToWidth(s, width)
	}
	return ansi.Truncate(s, width, "...")
}

// RenderTableWithSelection renders a bubbles table with full-width selection highlight.
//
// bubbles/table View() output is one header line followed by the visible data rows;
// a divider is added after the header here.
func RenderTableWithSelection(t table.Model, layout Layout) string {
	lines := strings.Split(t.View(), "\n")
	result := make([]string, 0, len(lines)+1)

	cursor := t.Cursor()
	height := t.Height()
	totalRows := len(t.Rows())

	// Match the table's internal viewport scrolling
	start := 0
	if totalRows > height {
		if cursor >= height {
			start = cursor - height + 1
		}
		if maxStart := totalRows - height; start > maxStart {
			start = maxStart
		}
	}
	visibleCursorIndex := cursor - start

	for i, line := range lines {
		if i == 0 {
			result = append(result, NormalStyle.Render(line))
			result = append(result, strings.Repeat("─", layout.InnerWidth))
			continue
		}

		if i-1 == visibleCursorIndex && totalRows > 0 {
			// Strip escape codes so embedded resets do not cut the highlight short
			clean := ansi.Strip(line)
			if w := StringWidth(clean); w < layout.InnerWidth {
				clean += strings.Repeat(" ", layout.InnerWidth-w)
			} else if w > layout.InnerWidth {
				clean = truncateToWidth(clean, layout.InnerWidth)
			}
			result = append(result, SelectedStyle.Render(clean))
			continue
		}

		result = append(result, NormalStyle.Render(line))
	}

	return strings.Join(result, "\n")
}

// ViewHeader renders title + full-width divider + spacing.
func ViewHeader(title string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// CenterText centers text within given width.
func CenterText(text string, width int) string {
	textW := StringWidth(text)
	if textW >= width {
		return text
	}
	return strings.Repeat(" ", (width-textW)/2) + text
}

// PadToHeight pads content with newlines to fill target height
func PadToHeight(content string, targetHeight int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= targetHeight {
		return content
	}
	return content + strings.Repeat("\n", targetHeight-lines)
}

// TwoBoxView constructs the standard two-box layout: main content in a red
// bordered box, with a one-row help box underneath.
func TwoBoxView(content, helpText string, layout Layout) string {
	contentHeight := layout.ViewportHeight - 5 // help box and borders
	if contentHeight < 10 {
		contentHeight = 10
	}

	main := BorderedBox(layout).Render(PadToHeight(content, contentHeight))
	help := HelpBoxStyle.
		Width(layout.InnerWidth).
		Render(CenterText(HintStyle.Render(helpText), layout.InnerWidth))

	return lipgloss.JoinVertical(lipgloss.Left, main, help)
}
