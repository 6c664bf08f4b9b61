package ui

import (
	"strings"

	"github.com/thesavant42/platewatch/internal/models"
)

// RenderPaginationBar renders the pagination controls on one line.
// focus is the index of the control with keyboard focus, or -1.
func RenderPaginationBar(controls []models.PageControl, focus int) string {
	if len(controls) == 0 {
		return ""
	}

	parts := make([]string, 0, len(controls))
	for i, c := range controls {
		parts = append(parts, renderControl(c, i == focus))
	}
	return strings.Join(parts, " ")
}

func renderControl(c models.PageControl, focused bool) string {
	switch {
	case !c.Actionable():
		return PageDisabledStyle.Render(c.Label)
	case focused:
		return PageFocusStyle.Render(c.Label)
	case c.Current:
		return PageCurrentStyle.Render(c.Label)
	case c.Kind == models.ControlNumber:
		return PageStyle.Render(c.Label)
	default:
		return ArrowStyle.Padding(0, 1).Render(c.Label)
	}
}

// currentControlIndex returns the index of the current page's control, or 0
func currentControlIndex(controls []models.PageControl) int {
	for i, c := range controls {
		if c.Current {
			return i
		}
	}
	return 0
}

// nextActionable moves from index i by step, skipping controls without a target.
// It stays at i when there is nowhere to go.
func nextActionable(controls []models.PageControl, i, step int) int {
	for j := i + step; j >= 0 && j < len(controls); j += step {
		if controls[j].Actionable() {
			return j
		}
	}
	return i
}
