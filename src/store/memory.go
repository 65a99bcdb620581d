// Package store provides in-memory store implementations.
package store

import (
	"context"
	"sync"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/llm"
)

// MemorySessionStore is a thread-safe in-memory implementation of
// SessionStore. Used for tests and the single-process chat command.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string][]llm.Message),
	}
}

// AppendTurns appends messages to a session's transcript.
func (s *MemorySessionStore) AppendTurns(ctx context.Context, sessionID string, messages []llm.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)
	return nil
}

// History returns a session's transcript in insertion order.
func (s *MemorySessionStore) History(ctx context.Context, sessionID string, limit int) ([]llm.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.sessions[sessionID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	// Return a copy
	result := make([]llm.Message, len(messages))
	copy(result, messages)
	return result, nil
}

// Clear removes a session's transcript.
func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Close closes the store (no-op for memory store).
func (s *MemorySessionStore) Close() error {
	return nil
}

// MemoryInteractionStore is a thread-safe in-memory implementation of
// InteractionStore. Used for tests and local mode.
type MemoryInteractionStore struct {
	mu    sync.RWMutex
	turns []contracts.ChatTurnEvent
	calls []contracts.ToolCallEvent
}

// NewMemoryInteractionStore creates a new in-memory interaction store.
func NewMemoryInteractionStore() *MemoryInteractionStore {
	return &MemoryInteractionStore{}
}

// SaveChatTurn records one completed chat exchange.
func (s *MemoryInteractionStore) SaveChatTurn(ctx context.Context, event contracts.ChatTurnEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, event)
	return nil
}

// SaveToolCall records a single tool invocation.
func (s *MemoryInteractionStore) SaveToolCall(ctx context.Context, event contracts.ToolCallEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, event)
	return nil
}

// ToolCounts returns the number of recorded invocations per tool.
func (s *MemoryInteractionStore) ToolCounts(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, call := range s.calls {
		counts[call.Tool]++
	}
	return counts, nil
}

// TurnCount returns the number of recorded chat turns.
func (s *MemoryInteractionStore) TurnCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns), nil
}

// Close closes the store (no-op for memory store).
func (s *MemoryInteractionStore) Close() error {
	return nil
}
