package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventModulesLoaded EventType = "ModulesLoaded"
	EventSearchFailed  EventType = "SearchFailed"
	EventUserLoaded    EventType = "UserLoaded"
	EventModuleUpdated EventType = "ModuleUpdated"
	EventModuleDeleted EventType = "ModuleDeleted"
	EventError         EventType = "Error"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ModulesLoadedEvent is emitted when a listing result becomes visible
type ModulesLoadedEvent struct {
	Query   ModuleQuery
	Modules []Module
}

func (e ModulesLoadedEvent) Type() EventType { return EventModulesLoaded }

// SearchFailedEvent is emitted when the current listing request fails
type SearchFailedEvent struct {
	Query ModuleQuery
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// UserLoadedEvent is emitted once the current user is known
type UserLoadedEvent struct {
	User User
}

func (e UserLoadedEvent) Type() EventType { return EventUserLoaded }

// ModuleUpdatedEvent is emitted after a module was saved remotely
type ModuleUpdatedEvent struct {
	Module Module
}

func (e ModuleUpdatedEvent) Type() EventType { return EventModuleUpdated }

// ModuleDeletedEvent is emitted after a module was removed remotely
type ModuleDeletedEvent struct {
	ID int
}

func (e ModuleDeletedEvent) Type() EventType { return EventModuleDeleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
