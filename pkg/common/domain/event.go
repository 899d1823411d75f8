package domain

// Event is a fact that already happened inside one of the bounded contexts.
type Event interface {
	Type() string
}

// EventDispatcher delivers domain events to whoever is interested.
// Implementations must be safe to call from request handling code.
type EventDispatcher interface {
	Dispatch(event Event) error
}
