package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/report"
	"github.com/sandeepkv93/reportd/internal/schedule"
	"github.com/sandeepkv93/reportd/internal/views"
)

// closeSelected writes the given occurrence status for the row under the
// cursor. Only system rows are writable here; task rows change state in
// the task tracker, not on the report.
func (m Model) closeSelected(status model.OccurrenceStatus, note string) (Model, tea.Cmd) {
	row := m.selectedRow()
	if row == nil || row.Placeholder {
		m.Status = StatusBar{Text: "nothing selected", IsError: true}
		return m, nil
	}
	return m.writeStatus(row.CommentKey, status, note)
}

func (m Model) writeStatus(key string, status model.OccurrenceStatus, note string) (Model, tea.Cmd) {
	item, ok := m.findSystemItem(key)
	if !ok {
		m.Status = StatusBar{Text: "only system rows accept status changes: " + key, IsError: true}
		return m, nil
	}
	occ := item.Occurrence
	occ.Status = status
	if note != "" {
		occ.Comment = note
	}
	now := m.clock()
	occ.ActedAt = &now

	writer := m.writer
	return m, func() tea.Msg {
		if writer == nil {
			return occurrenceSavedMsg{Key: key, Err: fmt.Errorf("no writer configured")}
		}
		return occurrenceSavedMsg{Key: key, Err: writer.SaveOccurrence(context.Background(), occ)}
	}
}

func (m Model) writeComment(key, text string) (Model, tea.Cmd) {
	item, ok := m.findSystemItem(key)
	if !ok {
		m.Status = StatusBar{Text: "only system rows accept comments: " + key, IsError: true}
		return m, nil
	}
	occ := item.Occurrence
	occ.Comment = text

	writer := m.writer
	return m, func() tea.Msg {
		if writer == nil {
			return occurrenceSavedMsg{Key: key, Err: fmt.Errorf("no writer configured")}
		}
		return occurrenceSavedMsg{Key: key, Err: writer.SaveOccurrence(context.Background(), occ)}
	}
}

// findSystemItem resolves a "tmpl:<id>:<date>" comment key against the
// loaded input, today's realized occurrences first, then the overdue set.
func (m Model) findSystemItem(key string) (report.SystemItem, bool) {
	if !strings.HasPrefix(key, "tmpl:") {
		return report.SystemItem{}, false
	}
	for _, item := range m.Input.TodayOccurrences {
		if report.SystemCommentKey(item.Template.ID, item.Occurrence.Date) == key {
			return item, true
		}
	}
	for _, item := range m.Input.OverdueOccurrences {
		if report.SystemCommentKey(item.Template.ID, item.Occurrence.Date) == key {
			return item, true
		}
	}
	return report.SystemItem{}, false
}

func (m Model) exportReport(path string) (Model, tea.Cmd) {
	date := m.Date.Format("2006-01-02")
	if path == "" {
		path = filepath.Join(m.cfg.ExportDir, "report-"+date+".csv")
	}

	f, err := os.Create(path)
	if err != nil {
		m.Status = StatusBar{Text: "export failed: " + err.Error(), IsError: true}
		return m, nil
	}
	defer f.Close()

	if err := views.WriteCSV(f, date, m.Rows); err != nil {
		m.Status = StatusBar{Text: "export failed: " + err.Error(), IsError: true}
		return m, nil
	}

	m.ExportPreview = views.RenderMarkdown(views.ExportMarkdown(date, m.Rows))
	m.Status = StatusBar{Text: "exported " + path}
	return m, m.clearStatusLater()
}

// resolveDate turns a show argument into a concrete report date.
func (m Model) resolveDate(arg string) (time.Time, error) {
	today := schedule.Midnight(m.clock(), m.loc)
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", arg, m.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", arg)
	}
	return parsed, nil
}
