package update

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/report"
)

type fakeWriter struct {
	saved []model.Occurrence
	err   error
}

func (w *fakeWriter) SaveOccurrence(_ context.Context, occ model.Occurrence) error {
	w.saved = append(w.saved, occ)
	return w.err
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return out
}

func testModel(t *testing.T, writer *fakeWriter) Model {
	t.Helper()
	m := NewModel(nil, writer, nil, time.UTC, DefaultRuntimeConfig(), day(t, "2026-02-09"), "")
	m.clock = func() time.Time { return time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC) }
	return m
}

func loadedReport(t *testing.T) reportLoadedMsg {
	t.Helper()
	date := day(t, "2026-02-09")
	tmpl := model.Template{
		ID:    "morning-check",
		Title: "Morning check",
		Rule:  model.RecurrenceRule{Frequency: model.FrequencyDaily, Active: true},
	}
	occ := model.Occurrence{TemplateID: tmpl.ID, Date: date, Status: model.OccurrenceOpen}
	in := report.Input{
		ReferenceDate:    date,
		TodayOccurrences: []report.SystemItem{{Template: tmpl, Occurrence: occ}},
	}
	lookup := report.Lookup{UserNames: map[string]string{}, ProjectTitles: map[string]string{}}
	return reportLoadedMsg{
		Seq:    1,
		Date:   date,
		Input:  in,
		Lookup: lookup,
		Rows:   report.Aggregate(in, lookup),
	}
}

func TestLoadedMsgPublishesRows(t *testing.T) {
	m := testModel(t, nil)
	m.loadSeq = 1
	m.Loading = true

	next, _ := m.Update(loadedReport(t))
	got := next.(Model)
	if got.Loading {
		t.Fatal("loading flag should clear")
	}
	if len(got.Rows) == 0 {
		t.Fatal("expected rows after load")
	}
	if !strings.Contains(got.Status.Text, "2026-02-09") {
		t.Fatalf("unexpected status: %q", got.Status.Text)
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	m := testModel(t, nil)
	m.loadSeq = 2
	m.Loading = true

	msg := loadedReport(t)
	msg.Seq = 1
	next, _ := m.Update(msg)
	got := next.(Model)
	if len(got.Rows) != 0 {
		t.Fatal("stale load must not publish rows")
	}
	if !got.Loading {
		t.Fatal("current load is still in flight")
	}
}

func TestDayNavigationStartsLoad(t *testing.T) {
	m := testModel(t, nil)
	before := m.loadSeq

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	got := next.(Model)
	if got.loadSeq != before+1 || !got.Loading {
		t.Fatalf("expected new load in flight, seq=%d loading=%v", got.loadSeq, got.Loading)
	}
	if cmd == nil {
		t.Fatal("expected load command")
	}
}

func TestCloseSelectedWritesOccurrence(t *testing.T) {
	writer := &fakeWriter{}
	m := testModel(t, writer)
	loaded := loadedReport(t)
	m.loadSeq = 1
	next, _ := m.Update(loaded)
	m = next.(Model)

	for i, row := range m.Rows {
		if strings.HasPrefix(row.CommentKey, "tmpl:") {
			m.Cursor = i
			break
		}
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	saved, ok := msg.(occurrenceSavedMsg)
	if !ok || saved.Err != nil {
		t.Fatalf("unexpected save result: %#v", msg)
	}
	if len(writer.saved) != 1 {
		t.Fatalf("expected one write, got %d", len(writer.saved))
	}
	occ := writer.saved[0]
	if occ.Status != model.OccurrenceDone || occ.ActedAt == nil {
		t.Fatalf("unexpected occurrence written: %#v", occ)
	}

	next, cmd = m.Update(saved)
	m = next.(Model)
	if !m.Loading || cmd == nil {
		t.Fatal("save should trigger a reload")
	}
}

func TestTaskRowRejectsStatusChange(t *testing.T) {
	writer := &fakeWriter{}
	m := testModel(t, writer)
	m.Rows = []report.ReportRow{{
		Category:   report.CategoryFast,
		Title:      "Restart batch job",
		CommentKey: report.TaskCommentKey("task-17"),
	}}
	m.Cursor = 0

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(Model)
	if cmd != nil || len(writer.saved) != 0 {
		t.Fatal("task rows must not write occurrences")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestPaletteShowCommand(t *testing.T) {
	m := testModel(t, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = next.(Model)
	if !m.Palette.Active {
		t.Fatal("palette should activate")
	}

	m.commandInput.SetValue("show 2026-03-14")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.Palette.Active {
		t.Fatal("palette should close on enter")
	}
	if !m.Loading || cmd == nil {
		t.Fatal("show command should start a load")
	}
	if !strings.Contains(m.Status.Text, "2026-03-14") {
		t.Fatalf("unexpected status: %q", m.Status.Text)
	}
}

func TestPaletteRejectsUnknownCommand(t *testing.T) {
	m := testModel(t, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = next.(Model)
	m.commandInput.SetValue("frobnicate now")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestResolveDate(t *testing.T) {
	m := testModel(t, nil)

	today, err := m.resolveDate("today")
	if err != nil || !today.Equal(day(t, "2026-02-09")) {
		t.Fatalf("today resolved to %v (%v)", today, err)
	}
	yesterday, err := m.resolveDate("yesterday")
	if err != nil || !yesterday.Equal(day(t, "2026-02-08")) {
		t.Fatalf("yesterday resolved to %v (%v)", yesterday, err)
	}
	explicit, err := m.resolveDate("2026-03-14")
	if err != nil || !explicit.Equal(day(t, "2026-03-14")) {
		t.Fatalf("explicit resolved to %v (%v)", explicit, err)
	}
	if _, err := m.resolveDate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestExportWritesCSV(t *testing.T) {
	m := testModel(t, nil)
	m.cfg.ExportDir = t.TempDir()
	loaded := loadedReport(t)
	m.loadSeq = 1
	next, _ := m.Update(loaded)
	m = next.(Model)

	m, _ = m.exportReport("")
	if m.Status.IsError {
		t.Fatalf("export failed: %+v", m.Status)
	}
	path := filepath.Join(m.cfg.ExportDir, "report-2026-02-09.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "date,slot,category") || !strings.Contains(content, "Morning check") {
		t.Fatalf("unexpected export content:\n%s", content)
	}
	if m.ExportPreview == "" {
		t.Fatal("expected markdown preview after export")
	}
}

func TestViewRendersWithoutRows(t *testing.T) {
	m := testModel(t, nil)
	out := m.View()
	if !strings.Contains(out, "reportd") {
		t.Fatalf("unexpected view output:\n%s", out)
	}
}
