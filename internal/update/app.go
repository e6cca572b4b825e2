package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/report"
	"github.com/sandeepkv93/reportd/internal/schedule"
	"github.com/sandeepkv93/reportd/internal/views"
)

// initialLoadMsg defers the first load into Update so the model returned
// by startLoad (carrying the cancel func and sequence) is the one that
// keeps running.
type initialLoadMsg struct{}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initialLoadMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case initialLoadMsg:
		return m.startLoad(m.Date)

	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)

	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case reportLoadedMsg:
		if typed.Seq != m.loadSeq {
			return m, nil
		}
		m.Loading = false
		m.Date = typed.Date
		m.Input = typed.Input
		m.Lookup = typed.Lookup
		m.Rows = typed.Rows
		m.ExportPreview = ""
		if m.Cursor >= len(m.Rows) {
			m.Cursor = 0
		}
		m.Status = StatusBar{Text: fmt.Sprintf("report loaded for %s", typed.Date.Format("2006-01-02"))}
		return m, m.clearStatusLater()

	case reportLoadFailedMsg:
		if typed.Seq != m.loadSeq {
			return m, nil
		}
		m.Loading = false
		m.LastError = typed.Err
		m.Status = StatusBar{Text: "load failed: " + typed.Err.Error(), IsError: true}
		return m, nil

	case occurrenceSavedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "save failed: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "saved " + typed.Key}
		next, cmd := m.startLoad(m.Date)
		return next, cmd

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.Status = StatusBar{}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case "j", "down":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case m.Keys.PrevDay, "left":
		return m.startLoad(m.Date.AddDate(0, 0, -1))
	case m.Keys.NextDay, "right":
		return m.startLoad(m.Date.AddDate(0, 0, 1))
	case m.Keys.Today:
		return m.startLoad(schedule.Midnight(m.clock(), m.loc))
	case m.Keys.Close:
		return m.closeSelected(model.OccurrenceDone, "")
	case "x":
		return m.closeSelected(model.OccurrenceNotDone, "")
	case m.Keys.Skip:
		return m.closeSelected(model.OccurrenceSkipped, "")
	case m.Keys.Export:
		return m.exportReport("")
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		if m.cancelLoad != nil {
			m.cancelLoad()
		}
		return m, tea.Quit
	}
	return m, nil
}

// startLoad cancels any in-flight load and kicks off a fresh one for the
// given date. The sequence bump makes the superseded load's result fall
// on the floor even if its context check races the cancel.
func (m Model) startLoad(date time.Time) (Model, tea.Cmd) {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelLoad = cancel
	m.loadSeq++
	m.Loading = true

	seq := m.loadSeq
	userID := m.UserID
	loader := m.loader
	log := m.log
	loadCmd := func() tea.Msg {
		in, lookup, err := loader.LoadDay(ctx, date, userID)
		if err != nil {
			log.Debug("report load aborted", slog.String("date", date.Format("2006-01-02")), slog.String("err", err.Error()))
			return reportLoadFailedMsg{Seq: seq, Err: err}
		}
		return reportLoadedMsg{
			Seq:    seq,
			Date:   in.ReferenceDate,
			Input:  in,
			Lookup: lookup,
			Rows:   report.Aggregate(in, lookup),
		}
	}
	return m, tea.Batch(m.loadSpinner.Tick, loadCmd)
}

func (m Model) clearStatusLater() tea.Cmd {
	secs := m.cfg.StatusClearSeconds
	if secs <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(secs)*time.Second, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	userLabel := ""
	if m.UserID != "" {
		if name, ok := m.Lookup.UserNames[m.UserID]; ok {
			userLabel = name
		} else {
			userLabel = m.UserID
		}
	}

	reportPane := views.RenderReportPanel(views.ReportPanelData{
		Date:      m.Date.Format("2006-01-02"),
		UserLabel: userLabel,
		Rows:      m.Rows,
		Cursor:    m.Cursor,
	})
	if m.Loading {
		reportPane = m.loadSpinner.View() + " loading...\n" + reportPane
	}

	detailPane := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if detailPane != "" {
		detailPane += "\n\n"
	}
	if m.ExportPreview != "" {
		detailPane += m.ExportPreview
	} else {
		row := m.selectedRow()
		detail := views.RowDetailData{Row: row}
		if row != nil && row.Description != "" {
			detail.MarkdownOut = views.RenderMarkdown(row.Description)
		}
		detailPane += views.RenderRowDetail(detail)
	}
	if m.HelpVisible {
		detailPane += "\n\n" + views.RenderHelpPanel(views.HelpPanelData{
			Bindings: []string{
				"h/l prev/next day, t today",
				"j/k move, c close, x not-done, s skip",
				"e export csv, / command, q quit",
			},
			HelpView: m.helpModel.View(helpKeyMap{}),
		})
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("reportd | %s", m.Date.Format("Mon 2006-01-02")),
		ReportPane: reportPane,
		DetailPane: detailPane,
		StatusLine: status,
		Footer:     fmt.Sprintf("keys: %s/%s day | %s today | %s close | %s skip | %s export | / cmd | %s help | %s quit", m.Keys.PrevDay, m.Keys.NextDay, m.Keys.Today, m.Keys.Close, m.Keys.Skip, m.Keys.Export, m.Keys.Help, m.Keys.Quit),
	})
}
