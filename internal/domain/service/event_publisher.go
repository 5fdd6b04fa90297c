package service

import (
	"context"
)

// Auth event types published to the message queue.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
)

// AuthEvent represents an authentication event consumed by downstream services
type AuthEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`                 // One of the Event* constants
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAuthEvent publishes an authentication event for async processing
	PublishAuthEvent(ctx context.Context, event *AuthEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
