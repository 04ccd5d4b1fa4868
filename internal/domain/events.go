package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventContactCreated EventType = "ContactCreated"
	EventContactUpdated EventType = "ContactUpdated"
	EventContactDeleted EventType = "ContactDeleted"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventServerStarted  EventType = "ServerStarted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ContactCreatedEvent is emitted after a contact is stored for the first time
type ContactCreatedEvent struct {
	Contact Contact
}

func (e ContactCreatedEvent) Type() EventType { return EventContactCreated }

// ContactUpdatedEvent is emitted after a contact's fields change
type ContactUpdatedEvent struct {
	Contact Contact
}

func (e ContactUpdatedEvent) Type() EventType { return EventContactUpdated }

// ContactDeletedEvent is emitted after a contact is removed
type ContactDeletedEvent struct {
	ID string
}

func (e ContactDeletedEvent) Type() EventType { return EventContactDeleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string // empty when defaults were used
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ServerStartedEvent is emitted once the HTTP listener is bound
type ServerStartedEvent struct {
	Addr string
}

func (e ServerStartedEvent) Type() EventType { return EventServerStarted }
