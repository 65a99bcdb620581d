package store

import (
	"context"
	"path/filepath"
	"testing"

	"truckfinder-agent/src/llm"
)

func newTestSQLiteStore(t *testing.T) *SQLiteSessionStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewSQLiteSessionStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteSessionStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSessionStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	sessionID := "session-123"

	turns := []llm.Message{
		{Role: "user", Content: "I need a 4x2 tractor"},
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:   "call_1",
				Type: "function",
				Function: llm.FunctionCall{
					Name:      "search_inventory",
					Arguments: `{"configuration":"4X2"}`,
				},
			}},
		},
		{Role: "tool", ToolCallID: "call_1", Name: "search_inventory", Content: `{"count":3}`},
		{Role: "assistant", Content: "Here are three options"},
	}
	if err := store.AppendTurns(ctx, sessionID, turns); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	history, err := store.History(ctx, sessionID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if len(history) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(history))
	}
	if history[0].Content != "I need a 4x2 tractor" {
		t.Errorf("Unexpected first message: %+v", history[0])
	}
	if len(history[1].ToolCalls) != 1 || history[1].ToolCalls[0].Function.Name != "search_inventory" {
		t.Errorf("Tool calls not preserved: %+v", history[1])
	}
	if history[2].ToolCallID != "call_1" {
		t.Errorf("Tool call id not preserved: %+v", history[2])
	}
}

func TestSQLiteSessionStore_HistoryLimit(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	sessionID := "session-456"

	turns := []llm.Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third"},
	}
	if err := store.AppendTurns(ctx, sessionID, turns); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}

	history, err := store.History(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(history))
	}
	// Most recent two, oldest first.
	if history[0].Content != "second" || history[1].Content != "third" {
		t.Errorf("Unexpected window: %+v", history)
	}
}

func TestSQLiteSessionStore_SessionsAreIsolated(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	store.AppendTurns(ctx, "a", []llm.Message{{Role: "user", Content: "from a"}})
	store.AppendTurns(ctx, "b", []llm.Message{{Role: "user", Content: "from b"}})

	history, err := store.History(ctx, "a", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Content != "from a" {
		t.Errorf("Session a history leaked: %+v", history)
	}
}

func TestSQLiteSessionStore_Clear(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	sessionID := "session-789"

	store.AppendTurns(ctx, sessionID, []llm.Message{{Role: "user", Content: "hello"}})
	if err := store.Clear(ctx, sessionID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	history, err := store.History(ctx, sessionID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history after Clear, got %d messages", len(history))
	}
}

func TestSQLiteSessionStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := NewSQLiteSessionStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteSessionStore failed: %v", err)
	}
	if err := store.AppendTurns(ctx, "s", []llm.Message{{Role: "user", Content: "persisted"}}); err != nil {
		t.Fatalf("AppendTurns failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteSessionStore(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	history, err := reopened.History(ctx, "s", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].Content != "persisted" {
		t.Errorf("Transcript did not survive reopen: %+v", history)
	}
}
