package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	keys := types.Keys

	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, keys.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, keys.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.FreeText()}}, true

	case key.Matches(msg, keys.Filter):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilterSelect}}, true

	case key.Matches(msg, keys.NextPageSize):
		return []types.Action{types.CyclePageSizeAction{Delta: 1}}, true

	case key.Matches(msg, keys.PrevPageSize):
		return []types.Action{types.CyclePageSizeAction{Delta: -1}}, true

	case key.Matches(msg, keys.Reload):
		return []types.Action{types.ReloadAction{}}, true

	case key.Matches(msg, keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true

	case key.Matches(msg, keys.View):
		if _, ok := ctx.CurrentModule(); ok {
			return []types.Action{types.ViewModuleAction{}}, true
		}
		return nil, false

	case key.Matches(msg, keys.Edit):
		mod, ok := ctx.CurrentModule()
		if !ok || !ctx.Privileged() {
			return nil, false
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEdit, Data: mod.Description}}, true

	case key.Matches(msg, keys.Delete):
		if _, ok := ctx.CurrentModule(); !ok || !ctx.Privileged() {
			return nil, false
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
	}

	return nil, false
}
