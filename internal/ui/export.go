package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thesavant42/platewatch/internal/models"
)

// ExportSightingsToMarkdown writes every sighting matching the current filter to a
// markdown file in dir and returns its path
func ExportSightingsToMarkdown(dir string, records []models.Sighting, state models.ViewState, zone *time.Location, link string) (string, error) {
	filename := filepath.Join(dir, ExportFilename(state.Filter, time.Now()))

	if err := os.WriteFile(filename, []byte(GenerateMarkdownReport(records, state, zone, link)), 0644); err != nil {
		return "", fmt.Errorf("failed to write markdown file: %w", err)
	}
	return filename, nil
}

// ExportFilename names an export after its filter and the export date
func ExportFilename(f models.FilterSpec, now time.Time) string {
	parts := []string{"sightings"}
	if f.Region != "" {
		parts = append(parts, safeFilenamePart(f.Region))
	}
	if f.HasStart() {
		parts = append(parts, "from-"+models.FormatDate(f.StartDate))
	}
	if f.HasEnd() {
		parts = append(parts, "until-"+models.FormatDate(f.EndDate))
	}
	parts = append(parts, now.Format("2006-01-02"))
	return strings.Join(parts, "-") + ".md"
}

func safeFilenamePart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

// GenerateMarkdownReport renders the filtered sightings as a markdown document
func GenerateMarkdownReport(records []models.Sighting, state models.ViewState, zone *time.Location, link string) string {
	var sb strings.Builder

	sb.WriteString("# Plate Sightings\n\n")

	describe := func(label, value string) {
		if value == "" {
			value = "any"
		}
		sb.WriteString(fmt.Sprintf("**%s:** %s\n", label, value))
	}
	describe("Region", state.Filter.Region)
	describe("From", models.FormatDate(state.Filter.StartDate))
	describe("Until", models.FormatDate(state.Filter.EndDate))
	sb.WriteString(fmt.Sprintf("**Total Sightings:** %d\n", len(records)))
	if link != "" {
		sb.WriteString(fmt.Sprintf("**Link:** <%s>\n", link))
	}
	sb.WriteString("\n")

	sb.WriteString(GenerateMarkdownTable(records, 0, zone))
	return sb.String()
}
