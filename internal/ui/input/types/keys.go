package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal-mode bindings
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Search       key.Binding
	Filter       key.Binding
	NextPageSize key.Binding
	PrevPageSize key.Binding
	View         key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// Keys is the active key map
var Keys = DefaultKeyMap()

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		NextPageSize: key.NewBinding(key.WithKeys("]", "+"), key.WithHelp("]", "more per page")),
		PrevPageSize: key.NewBinding(key.WithKeys("[", "-"), key.WithHelp("[", "fewer per page")),
		View:         key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.NextPageSize, k.View, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.Filter, k.NextPageSize, k.PrevPageSize, k.Reload},
		{k.View, k.Edit, k.Delete, k.Help, k.Quit},
	}
}

// PrivilegedHelp returns the short help for users who may edit and delete
func (k KeyMap) PrivilegedHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.NextPageSize, k.View, k.Edit, k.Delete, k.Help, k.Quit}
}
