package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/report"
)

type ReportPanelData struct {
	Date      string
	UserLabel string
	Rows      []report.ReportRow
	Cursor    int
}

type RowDetailData struct {
	Row         *report.ReportRow
	MarkdownOut string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

// slotLabel names the report section a row belongs to. Rows arrive in
// their final order, so sections are emitted on label change only and
// never resorted here.
func slotLabel(row report.ReportRow) string {
	switch row.Category {
	case report.CategoryFast:
		if row.Subtype == string(model.TaskKindBlocked) {
			return "fast / blocked"
		}
		return "fast"
	case report.CategorySystem:
		if row.Period == model.PeriodPM {
			return "system pm"
		}
		return "system am"
	case report.CategoryProject:
		return "project"
	default:
		return string(row.Category)
	}
}

func RenderReportPanel(data ReportPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("report %s", data.Date))
	if data.UserLabel != "" {
		b.WriteString(" for " + data.UserLabel)
	}
	b.WriteString("\n")
	b.WriteString("actions: [j/k]move [h/l]day [t]today [c]close [s]skip [e]export\n")

	lastSlot := ""
	for i, row := range data.Rows {
		if label := slotLabel(row); label != lastSlot {
			b.WriteString(fmt.Sprintf("\n%s:\n", label))
			lastSlot = label
		}
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, formatRow(row)))
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(report empty)\n")
	}
	return strings.TrimSpace(b.String())
}

func formatRow(row report.ReportRow) string {
	if row.Placeholder {
		return fmt.Sprintf("[%s] %s", row.Category, row.Title)
	}
	line := fmt.Sprintf("[%s/%s] %s  %s  tyo:%s", row.Category, row.Subtype, row.Title, row.Status, row.Lateness)
	if row.SignOff != "" {
		line += "  signoff:" + row.SignOff
	}
	return line
}

func RenderRowDetail(data RowDetailData) string {
	if data.Row == nil || data.Row.Placeholder {
		return "detail:\n(no selection)"
	}
	row := data.Row
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("key: %s\n", row.CommentKey))
	b.WriteString(fmt.Sprintf("category: %s (%s)\n", row.Category, row.Subtype))
	if row.Period != "" {
		b.WriteString(fmt.Sprintf("period: %s\n", row.Period))
	}
	b.WriteString(fmt.Sprintf("status: %s\n", row.Status))
	b.WriteString(fmt.Sprintf("lateness: %s\n", row.Lateness))
	if row.SignOff != "" {
		b.WriteString(fmt.Sprintf("sign-off: %s\n", row.SignOff))
	}
	if data.MarkdownOut != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(data.MarkdownOut)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}
