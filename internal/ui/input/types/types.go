package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFilterSelect
	ModeDeleteConfirm
	ModeEdit
)

// String returns the mode name used in the status line
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeFilterSelect:
		return "filter"
	case ModeDeleteConfirm:
		return "delete-confirm"
	case ModeEdit:
		return "edit"
	default:
		return "normal"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalItems() int
	CurrentModule() (domain.Module, bool)
	Privileged() bool
	FreeText() string
	Filter() domain.FilterMode
	VisibleFilters() []domain.FilterMode
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
