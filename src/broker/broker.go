// Package broker defines the interface for the telemetry plane and
// provides implementations.
package broker

import "context"

// Broker abstracts publishing and consuming telemetry events. The
// chat agent publishes fire-and-forget; the analytics agent consumes.
type Broker interface {
	// Publish sends a message to a topic with an optional key for
	// partitioning. The in-memory broker ignores the key.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Subscribe returns a channel for consuming messages from a topic.
	// groupID is used for consumer group coordination in Kafka; the
	// in-memory broker ignores it. The channel is closed when the
	// context is cancelled or the broker shuts down.
	Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error)

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is a consumed telemetry message.
type Message struct {
	Topic string
	Key   string
	Value []byte
}
