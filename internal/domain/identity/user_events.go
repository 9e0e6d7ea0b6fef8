package identity

import (
	"github.com/bolibana/backend/internal/domain/shared"
)

// Event types for user aggregates
const (
	EventTypeUserCreated     = "identity.user_created"
	EventTypeUserLoggedIn    = "identity.user_logged_in"
	EventTypeUserLoggedOut   = "identity.user_logged_out"
	EventTypeUserDeactivated = "identity.user_deactivated"
)

// UserCreatedEvent is published when a new account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", u.ID, u.EventSiteID()),
		Username:        u.Username,
	}
}

// UserLoggedInEvent is published on successful authentication
type UserLoggedInEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserLoggedInEvent creates a new UserLoggedInEvent
func NewUserLoggedInEvent(u *User) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedIn, "User", u.ID, u.EventSiteID()),
		Username:        u.Username,
	}
}

// UserLoggedOutEvent is published when a session is explicitly revoked
type UserLoggedOutEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserLoggedOutEvent creates a new UserLoggedOutEvent
func NewUserLoggedOutEvent(u *User) *UserLoggedOutEvent {
	return &UserLoggedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLoggedOut, "User", u.ID, u.EventSiteID()),
		Username:        u.Username,
	}
}

// UserDeactivatedEvent is published when an account is disabled
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(u *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, "User", u.ID, u.EventSiteID()),
		Username:        u.Username,
	}
}
