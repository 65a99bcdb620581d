// Package store defines the interfaces for conversation and telemetry
// persistence.
package store

import (
	"context"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/llm"
)

// SessionStore persists chat transcripts per session so conversations
// survive across requests and restarts. Messages are stored in the
// order they were produced, including tool calls and tool results.
type SessionStore interface {
	// AppendTurns appends messages to a session's transcript.
	AppendTurns(ctx context.Context, sessionID string, messages []llm.Message) error

	// History returns a session's transcript in insertion order. A
	// limit > 0 returns only the most recent messages; 0 returns all.
	History(ctx context.Context, sessionID string, limit int) ([]llm.Message, error)

	// Clear removes a session's transcript
	Clear(ctx context.Context, sessionID string) error

	// Close closes the store connection
	Close() error
}

// InteractionStore persists chat and tool telemetry events for
// analytics.
type InteractionStore interface {
	// SaveChatTurn records one completed chat exchange
	SaveChatTurn(ctx context.Context, event contracts.ChatTurnEvent) error

	// SaveToolCall records a single tool invocation
	SaveToolCall(ctx context.Context, event contracts.ToolCallEvent) error

	// ToolCounts returns the number of recorded invocations per tool
	ToolCounts(ctx context.Context) (map[string]int, error)

	// TurnCount returns the number of recorded chat turns
	TurnCount(ctx context.Context) (int, error)

	// Close closes the store connection
	Close() error
}
