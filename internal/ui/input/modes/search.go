package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

// SearchMode edits the free text of the search field. Tag chips live outside
// the text input, so backspace on an empty field removes the last chip.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyDown:
		// The query stays applied; leave the field and go back to the list.
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case tea.KeyBackspace:
		if m.textInput != nil && m.textInput.Value() == "" {
			return []types.Action{types.BackspaceTagAction{}}, true
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
