package update

import "github.com/charmbracelet/bubbles/key"

// helpKeyMap feeds the help bubble the same bindings the footer lists.
type helpKeyMap struct{}

var (
	keyPrevDay = key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "previous day"))
	keyNextDay = key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next day"))
	keyToday   = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today"))
	keyClose   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close row"))
	keyNotDone = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark not done"))
	keySkip    = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip row"))
	keyExport  = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv"))
	keyCommand = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command"))
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

func (helpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keyPrevDay, keyNextDay, keyToday, keyCommand, keyQuit}
}

func (helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keyPrevDay, keyNextDay, keyToday},
		{keyClose, keyNotDone, keySkip},
		{keyExport, keyCommand, keyQuit},
	}
}
