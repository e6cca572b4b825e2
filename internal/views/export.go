package views

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/reportd/internal/report"
)

// WriteCSV emits the report rows in their display order, one record per
// row including placeholders, so the exported file mirrors the screen.
func WriteCSV(w io.Writer, date string, rows []report.ReportRow) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "slot", "category", "subtype", "title", "status", "lateness", "signoff", "key"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			date,
			slotLabel(row),
			string(row.Category),
			row.Subtype,
			row.Title,
			row.Status,
			row.Lateness,
			row.SignOff,
			row.CommentKey,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMarkdown renders the report as a markdown table, used for the
// in-app glamour preview before a CSV export.
func ExportMarkdown(date string, rows []report.ReportRow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Daily report %s\n\n", date))
	b.WriteString("| Slot | Category | Title | Status | TYO | Sign-off |\n")
	b.WriteString("|------|----------|-------|--------|-----|----------|\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("| %s | %s/%s | %s | %s | %s | %s |\n",
			slotLabel(row), row.Category, row.Subtype, row.Title, row.Status, row.Lateness, row.SignOff))
	}
	return b.String()
}
