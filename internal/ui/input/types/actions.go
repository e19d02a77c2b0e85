package types

import "modgrip/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial value for the mode's text widget
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// BackspaceTagAction removes the last tag chip when the search field is empty
type BackspaceTagAction struct{}

func (a BackspaceTagAction) Type() string { return "backspace_tag" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Listing actions
type SelectFilterAction struct {
	Filter domain.FilterMode
}

func (a SelectFilterAction) Type() string { return "select_filter" }

type CyclePageSizeAction struct {
	Delta int // +1 next size, -1 previous size
}

func (a CyclePageSizeAction) Type() string { return "cycle_page_size" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

// Module actions
type ViewModuleAction struct{}

func (a ViewModuleAction) Type() string { return "view_module" }

type SaveEditAction struct {
	ID          int
	Description string
}

func (a SaveEditAction) Type() string { return "save_edit" }

type TogglePreviewAction struct{}

func (a TogglePreviewAction) Type() string { return "toggle_preview" }

type DeleteModuleAction struct {
	ID int
}

func (a DeleteModuleAction) Type() string { return "delete_module" }

// Other actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
