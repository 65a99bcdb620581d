package broker

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBrokerPublishSubscribe(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	ch, err := b.Subscribe(ctx, "truckfinder.chat.turns", "analytics")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := b.Publish(ctx, "truckfinder.chat.turns", "session-1", []byte(`{"tool":"search_inventory"}`)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Topic != "truckfinder.chat.turns" {
			t.Errorf("Topic = %q, expected truckfinder.chat.turns", msg.Topic)
		}
		if msg.Key != "session-1" {
			t.Errorf("Key = %q, expected session-1", msg.Key)
		}
		if string(msg.Value) != `{"tool":"search_inventory"}` {
			t.Errorf("Unexpected value: %s", msg.Value)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
	}
}

func TestMemoryBrokerTopicIsolation(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	turns, err := b.Subscribe(ctx, "truckfinder.chat.turns", "analytics")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := b.Publish(ctx, "truckfinder.tools.calls", "session-1", []byte("tool event")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-turns:
		t.Errorf("Received message %+v on unrelated topic", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBrokerFanOut(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	first, _ := b.Subscribe(ctx, "truckfinder.tools.calls", "a")
	second, _ := b.Subscribe(ctx, "truckfinder.tools.calls", "b")

	if err := b.Publish(ctx, "truckfinder.tools.calls", "s", []byte("x")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for i, ch := range []<-chan Message{first, second} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d did not receive the message", i)
		}
	}
}

func TestMemoryBrokerSubscribeCancelClosesChannel(t *testing.T) {
	b := NewMemoryBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "truckfinder.chat.turns", "analytics")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Expected channel to close without delivering a message")
		}
	case <-time.After(time.Second):
		t.Fatal("Channel was not closed after context cancellation")
	}
}

func TestMemoryBrokerClosedRejectsPublish(t *testing.T) {
	b := NewMemoryBroker()
	b.Close()

	if err := b.Publish(context.Background(), "truckfinder.chat.turns", "s", []byte("x")); err == nil {
		t.Error("Expected error publishing to a closed broker")
	}
	if _, err := b.Subscribe(context.Background(), "truckfinder.chat.turns", "g"); err == nil {
		t.Error("Expected error subscribing to a closed broker")
	}
}
