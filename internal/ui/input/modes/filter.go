package modes

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
	"modgrip/internal/ui/input/types"
)

// FilterSelectMode is the filter picker. Every filter the viewer may see is
// listed; unselectable ones are shown but enter on them does nothing.
type FilterSelectMode struct {
	options []domain.FilterMode
	cursor  int
}

func NewFilterSelectMode() *FilterSelectMode {
	return &FilterSelectMode{}
}

func (m *FilterSelectMode) Name() string {
	return "filter"
}

// Options returns the filters shown in the picker
func (m *FilterSelectMode) Options() []domain.FilterMode {
	return m.options
}

// Cursor returns the highlighted option index
func (m *FilterSelectMode) Cursor() int {
	return m.cursor
}

func (m *FilterSelectMode) Enter(ctx types.Context) []types.Action {
	m.options = ctx.VisibleFilters()
	m.cursor = max(slices.Index(m.options, ctx.Filter()), 0)
	return nil
}

func (m *FilterSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FilterSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "q", "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil, true
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return nil, true
	case "enter", " ":
		if m.cursor >= len(m.options) {
			return nil, true
		}
		selected := m.options[m.cursor]
		if !selected.Selectable() {
			return nil, true
		}
		return []types.Action{
			types.SelectFilterAction{Filter: selected},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, true
}
