package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/models"
)

func TestRenderPaginationBarLabels(t *testing.T) {
	bar := ansi.Strip(RenderPaginationBar(listview.BuildControls(5, 10), -1))

	for _, label := range []string{"<<", "<", "...", "2", "5", "8", ">", ">>"} {
		assert.Contains(t, bar, label)
	}
	assert.NotContains(t, bar, " 1 ")
	assert.Empty(t, RenderPaginationBar(nil, -1))
}

func TestNextActionableSkipsEllipsis(t *testing.T) {
	controls := listview.BuildControls(1, 10)
	// 1 2 3 4 ... > >>
	four := 3
	assert.Equal(t, "4", controls[four].Label)

	next := nextActionable(controls, four, 1)
	assert.Equal(t, models.ControlNext, controls[next].Kind)

	assert.Equal(t, four, nextActionable(controls, next, -1))
	assert.Equal(t, 0, nextActionable(controls, 0, -1), "stays put at the edge")
}

func TestCurrentControlIndex(t *testing.T) {
	controls := listview.BuildControls(6, 10)
	i := currentControlIndex(controls)
	assert.Equal(t, "6", controls[i].Label)
	assert.True(t, controls[i].Current)
}

func TestGenerateMarkdownTable(t *testing.T) {
	records := []models.Sighting{
		{ID: "a", PlateNumber: "B1|X", Region: "Jakarta", Timestamp: 1635769200000},
	}
	md := GenerateMarkdownTable(records, 50, time.UTC)

	lines := strings.Split(strings.TrimSpace(md), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, `| 51 | B1\|X | Jakarta | 2021-11-01 12:20:00 | a |`, lines[2])
	assert.Equal(t, "No data\n", GenerateMarkdownTable(nil, 0, time.UTC))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	start, _ := models.ParseDate("2021-11-01")

	assert.Equal(t, "sightings-2026-03-14.md", ExportFilename(models.FilterSpec{}, now))
	assert.Equal(t, "sightings-north_jakarta-from-2021-11-01-2026-03-14.md",
		ExportFilename(models.FilterSpec{Region: "North Jakarta", StartDate: start}, now))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "abc\tdef", sanitizeInput("a\x00b\x07c\tdef"))
}
