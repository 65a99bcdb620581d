package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"truckfinder-agent/src/broker"
	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/llm"
	"truckfinder-agent/src/logger"
	"truckfinder-agent/src/store"
	"truckfinder-agent/src/tools"
)

// scriptedLLM replays a fixed sequence of replies and records what it
// was asked.
type scriptedLLM struct {
	replies  []llm.Message
	requests [][]llm.Message
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message, defs []llm.Tool) (llm.Message, error) {
	s.requests = append(s.requests, messages)
	if len(s.replies) == 0 {
		return llm.Message{Role: "assistant", Content: "out of script"}, nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

func testFixtures(t *testing.T, replies []llm.Message) (*Agent, *scriptedLLM, *store.MemorySessionStore, *broker.MemoryBroker) {
	t.Helper()

	records := []inventory.Record{
		{
			ID: 271313, Brand: "DAF", Model: "XF", ModelExtended: "XF 480 FT",
			Configuration: "4X2", Cabin: "SPACE CAB", Gearbox: "automatic",
			Fuel: "diesel", EuroNorm: ip(6), Power: ip(480),
			Mileage: ip(420000), Price: fp(32500), IsDamaged: inventory.FlagFalse,
		},
		{
			ID: 271314, Brand: "SCANIA", Model: "R", ModelExtended: "R 450",
			Configuration: "4X2", Cabin: "HIGHLINE", Gearbox: "automatic",
			Fuel: "diesel", EuroNorm: ip(6), Power: ip(450),
			Mileage: ip(610000), Price: fp(28900), IsDamaged: inventory.FlagFalse,
		},
	}

	engine := inventory.NewEngine(inventory.NewMemoryStore(records))
	registry := tools.NewRegistry(engine, logger.NewSilentLogger())
	sessions := store.NewMemorySessionStore()
	brk := broker.NewMemoryBroker()

	client := &scriptedLLM{replies: replies}
	a := New(client, registry, sessions, brk, logger.NewSilentLogger())
	return a, client, sessions, brk
}

func TestHandleMessagePlainReply(t *testing.T) {
	a, client, _, _ := testFixtures(t, []llm.Message{
		{Role: "assistant", Content: "Happy to help! What's your budget?"},
	})

	resp, err := a.HandleMessage(context.Background(), "s1", "hi")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if resp.Message != "Happy to help! What's your budget?" {
		t.Errorf("Unexpected reply: %q", resp.Message)
	}
	if len(resp.Vehicles) != 0 {
		t.Errorf("Expected no cards, got %d", len(resp.Vehicles))
	}

	// First message of the prompt must be the system prompt.
	first := client.requests[0][0]
	if first.Role != "system" || !strings.Contains(first.Content, "BAS World") {
		t.Errorf("Prompt does not start with the system prompt: %+v", first)
	}
}

func TestHandleMessageToolRound(t *testing.T) {
	a, client, sessions, _ := testFixtures(t, []llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: llm.FunctionCall{
					Name:      tools.ToolSearchInventory,
					Arguments: `{"brand": "DAF"}`,
				},
			}},
		},
		{Role: "assistant", Content: "Your best match is the DAF XF 480 FT (ID: 271313)."},
	})

	resp, err := a.HandleMessage(context.Background(), "s1", "show me DAF trucks")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if !strings.Contains(resp.Message, "271313") {
		t.Errorf("Unexpected reply: %q", resp.Message)
	}
	if len(resp.Vehicles) != 1 || resp.Vehicles[0].ID != 271313 {
		t.Fatalf("Expected one card for 271313, got %+v", resp.Vehicles)
	}

	// The second model call must include the tool result message.
	second := client.requests[1]
	last := second[len(second)-1]
	if last.Role != "tool" || last.ToolCallID != "call-1" {
		t.Errorf("Expected tool result as last message, got %+v", last)
	}
	if !strings.Contains(last.Content, "271313") {
		t.Errorf("Tool result does not carry the match: %s", last.Content)
	}

	// user + assistant(tool_calls) + tool + assistant = 4 persisted messages.
	history, err := sessions.History(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 4 {
		t.Errorf("Expected 4 persisted messages, got %d", len(history))
	}
}

func TestHandleMessageDetailCard(t *testing.T) {
	a, _, _, _ := testFixtures(t, []llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: llm.FunctionCall{
					Name:      tools.ToolGetVehicleDetails,
					Arguments: `{"vehicle_id": 271314}`,
				},
			}},
		},
		{Role: "assistant", Content: "Here are the details."},
	})

	resp, err := a.HandleMessage(context.Background(), "s1", "details for 271314")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if len(resp.Vehicles) != 1 || resp.Vehicles[0].ID != 271314 {
		t.Fatalf("Expected a single card for 271314, got %+v", resp.Vehicles)
	}
}

func TestHandleMessageNotFoundProducesNoCards(t *testing.T) {
	a, _, _, _ := testFixtures(t, []llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: llm.FunctionCall{
					Name:      tools.ToolGetVehicleDetails,
					Arguments: `{"vehicle_id": 999999}`,
				},
			}},
		},
		{Role: "assistant", Content: "I couldn't find that vehicle."},
	})

	resp, err := a.HandleMessage(context.Background(), "s1", "details for 999999")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if len(resp.Vehicles) != 0 {
		t.Errorf("Expected no cards for a miss, got %+v", resp.Vehicles)
	}
}

func TestHandleMessagePublishesTelemetry(t *testing.T) {
	replies := []llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:   "call-1",
				Type: "function",
				Function: llm.FunctionCall{
					Name:      tools.ToolSearchInventory,
					Arguments: `{"brand": "DAF"}`,
				},
			}},
		},
		{Role: "assistant", Content: "One match."},
	}
	a, _, _, brk := testFixtures(t, replies)

	ctx := context.Background()
	turns, _ := brk.Subscribe(ctx, contracts.TopicChatTurns, "test")
	calls, _ := brk.Subscribe(ctx, contracts.TopicToolCalls, "test")

	if _, err := a.HandleMessage(ctx, "s1", "show me DAF trucks"); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	select {
	case msg := <-calls:
		var event contracts.ToolCallEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			t.Fatalf("Bad tool event payload: %v", err)
		}
		if event.Tool != tools.ToolSearchInventory || event.Failed {
			t.Errorf("Unexpected tool event: %+v", event)
		}
	default:
		t.Error("No tool call event published")
	}

	select {
	case msg := <-turns:
		var event contracts.ChatTurnEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			t.Fatalf("Bad turn event payload: %v", err)
		}
		if event.SessionID != "s1" || event.ToolCalls != 1 {
			t.Errorf("Unexpected turn event: %+v", event)
		}
	default:
		t.Error("No chat turn event published")
	}
}

func TestHandleMessageGeneratesSessionID(t *testing.T) {
	a, _, _, _ := testFixtures(t, []llm.Message{
		{Role: "assistant", Content: "Hello!"},
	})

	resp, err := a.HandleMessage(context.Background(), "", "hi")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("Expected a generated session id")
	}
}

func TestHandleMessageToolRoundLimit(t *testing.T) {
	// The model keeps requesting tools; the agent must stop at the
	// round cap and still return a response.
	call := llm.Message{
		Role: "assistant",
		ToolCalls: []llm.ToolCall{{
			ID:   "loop",
			Type: "function",
			Function: llm.FunctionCall{
				Name:      tools.ToolSearchInventory,
				Arguments: `{}`,
			},
		}},
	}
	replies := []llm.Message{call, call, call, call, call, call, call}
	a, client, _, _ := testFixtures(t, replies)

	resp, err := a.HandleMessage(context.Background(), "s1", "loop forever")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.Message != fallbackReply {
		t.Errorf("Expected fallback reply, got %q", resp.Message)
	}
	if len(client.requests) > maxToolRounds {
		t.Errorf("Model called %d times, expected at most %d", len(client.requests), maxToolRounds)
	}
}
