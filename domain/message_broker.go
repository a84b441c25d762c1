package domain

import (
	"context"
	"time"
)

// MessageBroker defines the interface for message broker operations
type MessageBroker interface {
	// Publish sends a message to a specific topic/channel with a routing key
	Publish(ctx context.Context, topic string, routingKey string, message []byte) error

	// Subscribe listens for messages on a specific topic/channel and routing key
	Subscribe(ctx context.Context, topic string, routingKey string) (<-chan Message, error)

	// Close closes the message broker connection
	Close() error
}

// Message represents a message received from the broker
type Message struct {
	Topic      string
	RoutingKey string
	Payload    []byte
	Timestamp  time.Time
}

// ExchangeEvent is published after a chat turn is persisted so connected
// clients can refresh their history without polling.
type ExchangeEvent struct {
	ExchangeID int       `json:"exchange_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Language   string    `json:"language"`
	Timestamp  time.Time `json:"timestamp"`
}
