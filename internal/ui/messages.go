package ui

import (
	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// userLoadedMsg contains the result of the current-user request
type userLoadedMsg struct {
	user domain.User
	err  error
}

// moduleSavedMsg contains the result of a description update
type moduleSavedMsg struct {
	module domain.Module
	err    error
}

// moduleDeletedMsg contains the result of a delete request
type moduleDeletedMsg struct {
	id  int
	err error
}

// pagerExitMsg is sent when the pager returns control
type pagerExitMsg struct {
	err error
}

// clearStatusMsg clears the status line unless a newer message replaced it
type clearStatusMsg struct {
	seq int
}
