// Package broker provides an in-memory broker implementation.
package broker

import (
	"context"
	"fmt"
	"sync"
)

const subscriberBuffer = 100

// MemoryBroker is a channel-based in-memory implementation of Broker.
// Used in local mode and tests, where agent and analytics share a
// process. Slow subscribers drop messages rather than block the chat
// path.
type MemoryBroker struct {
	mu     sync.RWMutex
	subs   map[string][]chan Message
	closed bool
}

// NewMemoryBroker creates a new in-memory broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[string][]chan Message),
	}
}

// Publish delivers the message to every subscriber of the topic.
func (b *MemoryBroker) Publish(ctx context.Context, topic string, key string, value []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return fmt.Errorf("broker is closed")
	}

	msg := Message{Topic: topic, Key: key, Value: value}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- msg:
		default:
			// Subscriber buffer full, drop.
		}
	}

	return nil
}

// Subscribe registers a new subscriber channel for the topic.
func (b *MemoryBroker) Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("broker is closed")
	}

	ch := make(chan Message, subscriberBuffer)
	b.subs[topic] = append(b.subs[topic], ch)

	// Unsubscribe and close the channel when the context ends.
	go func() {
		<-ctx.Done()
		b.remove(topic, ch)
	}()

	return ch, nil
}

// remove detaches a subscriber channel and closes it. Publishing holds
// the read lock while sending, so closing under the write lock cannot
// race a send.
func (b *MemoryBroker) remove(topic string, ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	channels := b.subs[topic]
	for i, c := range channels {
		if c == ch {
			b.subs[topic] = append(channels[:i], channels[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close shuts down the broker and closes all subscriber channels.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	for _, channels := range b.subs {
		for _, ch := range channels {
			close(ch)
		}
	}
	b.subs = make(map[string][]chan Message)

	return nil
}
