package ui

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/thesavant42/platewatch/internal/api"
	"github.com/thesavant42/platewatch/internal/listview"
	"github.com/thesavant42/platewatch/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	borderLineStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// reportColumns are the fixed widths of the non-interactive report
var reportColumns = []int{6, 14, 16, 19, 36} // No., Plate, Region, Date and Time, ID

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+message))
}

// PrintSightingsTable prints one page of sightings followed by the pagination bar.
//
// This is a CLI report: the table structure is built with string formatting and
// lipgloss only colors the text. Interactive tables use bubbles/table.
func PrintSightingsTable(w io.Writer, view listview.DerivedView, zone *time.Location, link string) {
	fmt.Fprintln(w, TitleStyle.Render("Plate Sightings"))
	fmt.Fprintln(w, StatsStyle.Render(fmt.Sprintf("Page %d/%d  |  Matching: %d", view.Page, max(1, view.TotalPages), view.TotalRecords)))
	fmt.Fprintln(w)

	if view.Err != nil {
		PrintError(w, api.UserMessage(view.Err))
		return
	}
	if len(view.Records) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No sightings match."))
		return
	}

	totalWidth := 1
	for _, c := range reportColumns {
		totalWidth += c + 3
	}
	separator := strings.Repeat("─", totalWidth-2)

	fmt.Fprintln(w, borderLineStyle.Render("┌"+separator+"┐"))
	fmt.Fprintln(w, headerStyle.Render(reportRow("No.", "Plate Number", "Region", "Date and Time", "ID")))
	fmt.Fprintln(w, borderLineStyle.Render("├"+separator+"┤"))
	for i, s := range view.Records {
		fmt.Fprintln(w, rowStyle.Render(reportRow(
			strconv.Itoa(view.RowNumber(i)),
			s.PlateNumber,
			s.Region,
			formatTimestamp(s.Timestamp, zone),
			s.ID,
		)))
	}
	fmt.Fprintln(w, borderLineStyle.Render("└"+separator+"┘"))

	if bar := RenderPaginationBar(view.Controls, -1); bar != "" {
		fmt.Fprintln(w, bar)
	}
	if link != "" {
		fmt.Fprintln(w, DimStyle.Render(link))
	}
}

func reportRow(cells ...string) string {
	var b strings.Builder
	b.WriteString("│")
	for i, cell := range cells {
		width := reportColumns[i]
		cell = truncateCell(cell, width)
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", max(0, width-StringWidth(cell))))
		b.WriteString(" │")
	}
	return b.String()
}

// WriteSightingsCSV writes sightings as CSV with a header row
func WriteSightingsCSV(w io.Writer, records []models.Sighting, offset int, zone *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"no", "id", "plate_number", "region", "timestamp", "date_time"}); err != nil {
		return err
	}
	for i, s := range records {
		row := []string{
			strconv.Itoa(offset + i + 1),
			s.ID,
			s.PlateNumber,
			s.Region,
			strconv.FormatInt(int64(s.Timestamp), 10),
			formatTimestamp(s.Timestamp, zone),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GenerateMarkdownTable renders sightings as a markdown table
func GenerateMarkdownTable(records []models.Sighting, offset int, zone *time.Location) string {
	if len(records) == 0 {
		return "No data\n"
	}

	var sb strings.Builder
	sb.WriteString("| No. | Plate Number | Region | Date and Time | ID |\n")
	sb.WriteString("|-----|--------------|--------|---------------|----|\n")
	for i, s := range records {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			offset+i+1, escapeMarkdown(s.PlateNumber), escapeMarkdown(s.Region),
			formatTimestamp(s.Timestamp, zone), escapeMarkdown(s.ID)))
	}
	return sb.String()
}

// escapeMarkdown keeps cell values from breaking the table
func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ", "\r", "").Replace(s)
}
