package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/reportd/internal/model"
	"github.com/sandeepkv93/reportd/internal/report"
)

// OccurrenceWriter persists status and comment changes made from the
// report screen.
type OccurrenceWriter interface {
	SaveOccurrence(ctx context.Context, occ model.Occurrence) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	PrevDay string
	NextDay string
	Today   string
	Close   string
	Skip    string
	Export  string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	loader *report.Loader
	writer OccurrenceWriter
	log    *slog.Logger
	loc    *time.Location
	cfg    RuntimeConfig
	clock  func() time.Time

	Date          time.Time
	UserID        string
	Rows          []report.ReportRow
	Lookup        report.Lookup
	Input         report.Input
	Cursor        int
	Loading       bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Palette       CommandPaletteState
	HelpVisible   bool
	ExportPreview string
	Quitting      bool
	LastError     error

	// loadSeq tags each in-flight load; a finished load whose sequence
	// no longer matches is stale and must not publish its rows.
	loadSeq    int
	cancelLoad context.CancelFunc

	commandInput textinput.Model
	loadSpinner  spinner.Model
	helpModel    help.Model
}

type reportLoadedMsg struct {
	Seq    int
	Date   time.Time
	Input  report.Input
	Lookup report.Lookup
	Rows   []report.ReportRow
}

type reportLoadFailedMsg struct {
	Seq int
	Err error
}

type occurrenceSavedMsg struct {
	Key string
	Err error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(loader *report.Loader, writer OccurrenceWriter, log *slog.Logger, loc *time.Location, cfg RuntimeConfig, date time.Time, userID string) Model {
	if log == nil {
		log = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}

	input := textinput.New()
	input.Placeholder = "show 2026-02-09 | user u-yamada | close tmpl:... | export path"
	input.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		loader: loader,
		writer: writer,
		log:    log,
		loc:    loc,
		cfg:    cfg,
		clock:  time.Now,
		Date:   date,
		UserID: userID,
		Keys: GlobalKeyMap{
			PrevDay: "h",
			NextDay: "l",
			Today:   "t",
			Close:   "c",
			Skip:    "s",
			Export:  "e",
			Help:    "?",
			Quit:    "q",
		},
		commandInput: input,
		loadSpinner:  spin,
		helpModel:    help.New(),
	}
	return m
}

// selectedRow returns the row under the cursor, nil when the report is
// empty or the cursor sits on nothing actionable.
func (m Model) selectedRow() *report.ReportRow {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return nil
	}
	return &m.Rows[m.Cursor]
}
