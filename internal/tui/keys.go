package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/reportbox/internal/tui/components"
)

// KeyMap holds the key bindings of the report page.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Press     key.Binding
	Save      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Reload    key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/↓", "next report"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("S-tab/↑", "previous report"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "edit/save"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "?"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Press, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.PageUp, k.PageDown},
		{k.Press, k.Save},
		{k.Reload, k.Help, k.Quit, k.ForceQuit},
	}
}

// editingHelp is the short help shown while the focused report is being
// edited; letters go to the edit field.
func (k KeyMap) editingHelp() []key.Binding {
	next := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next report"))
	save := key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))
	return []key.Binding{next, save, k.ForceQuit}
}

// helpSections builds the help dialog contents.
func (k KeyMap) helpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		components.SectionFromBindings("Navigation", k.Next, k.Prev, k.PageUp, k.PageDown),
		components.SectionFromBindings("Report", k.Press, k.Save),
		{
			Title: "Editing",
			Entries: []components.HelpEntry{
				{Key: "ctrl+s", Desc: "save and close the edit field"},
				{Key: "tab", Desc: "move focus, keep editing"},
			},
		},
		components.SectionFromBindings("General", k.Reload, k.Help, k.Quit, k.ForceQuit),
	}
}
