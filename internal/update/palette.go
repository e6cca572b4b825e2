package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/reportd/internal/commands"
	"github.com/sandeepkv93/reportd/internal/model"
)

func (m Model) handlePaletteKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		return m.runCommand(raw)
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(key)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) runCommand(raw string) (tea.Model, tea.Cmd) {
	parsed, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var (
		next    Model = m
		teaCmd  tea.Cmd
		handled = commands.Handlers{
			Show: func(a commands.ShowArgs) (commands.Result, error) {
				date, err := m.resolveDate(a.Date)
				if err != nil {
					return commands.Result{}, err
				}
				next, teaCmd = m.startLoad(date)
				return commands.Result{Message: "loading " + date.Format("2006-01-02")}, nil
			},
			User: func(a commands.UserArgs) (commands.Result, error) {
				m.UserID = a.UserID
				next, teaCmd = m.startLoad(m.Date)
				if a.UserID == "" {
					return commands.Result{Message: "showing all users"}, nil
				}
				return commands.Result{Message: "showing " + a.UserID}, nil
			},
			Status: func(typ commands.Type, a commands.StatusArgs) (commands.Result, error) {
				status := model.OccurrenceDone
				switch typ {
				case commands.TypeNotDone:
					status = model.OccurrenceNotDone
				case commands.TypeSkip:
					status = model.OccurrenceSkipped
				}
				next, teaCmd = m.writeStatus(a.Key, status, a.Note)
				return commands.Result{Message: "updating " + a.Key}, nil
			},
			Comment: func(a commands.CommentArgs) (commands.Result, error) {
				next, teaCmd = m.writeComment(a.Key, a.Text)
				return commands.Result{Message: "commenting " + a.Key}, nil
			},
			Export: func(a commands.ExportArgs) (commands.Result, error) {
				next, teaCmd = m.exportReport(a.Path)
				return commands.Result{Message: "exporting"}, nil
			},
		}
	)

	res, err := commands.Execute(parsed, handled)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if next.Status.Text == "" {
		next.Status = StatusBar{Text: res.Message}
	}
	return next, teaCmd
}
