package shared

import "context"

// EventHandler reacts to domain events. EventTypes lists the types the
// handler wants; an empty slice subscribes it to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the write side of the bus. Application services
// hold this narrow interface rather than the full bus.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the read side of the bus
type EventSubscriber interface {
	// Subscribe registers a handler. Types passed here override the
	// handler's own EventTypes; none means subscribe to everything.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full pub/sub surface with lifecycle control
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
