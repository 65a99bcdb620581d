// Package agent runs the conversational loop: it relays the user's
// message to the model with the inventory tools attached, executes the
// tool calls the model requests, and folds the results back into the
// conversation until the model produces a final reply.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"truckfinder-agent/src/broker"
	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/llm"
	"truckfinder-agent/src/logger"
	"truckfinder-agent/src/store"
	"truckfinder-agent/src/tools"
)

// maxToolRounds bounds the tool-call loop so a model stuck re-querying
// cannot spin forever. Five rounds covers search, refine, detail and
// compare within one turn.
const maxToolRounds = 5

// historyLimit caps how many stored messages are replayed into the
// prompt per turn.
const historyLimit = 40

// fallbackReply is returned when the model comes back with neither
// content nor tool calls.
const fallbackReply = "I apologize, but I couldn't process your request. Could you please rephrase?"

// ChatClient is the slice of the LLM client the agent needs. Tests
// substitute a scripted implementation.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message, tools []llm.Tool) (llm.Message, error)
}

// Agent handles chat turns for all sessions. It is stateless between
// calls; conversation history lives in the session store.
type Agent struct {
	llm      ChatClient
	registry *tools.Registry
	sessions store.SessionStore
	broker   broker.Broker
	logger   logger.Logger
}

// New creates an agent over the given collaborators.
func New(client ChatClient, registry *tools.Registry, sessions store.SessionStore, brk broker.Broker, log logger.Logger) *Agent {
	return &Agent{
		llm:      client,
		registry: registry,
		sessions: sessions,
		broker:   brk,
		logger:   log,
	}
}

// HandleMessage runs one chat turn. A blank session id starts a new
// conversation under a fresh id, returned in the response.
func (a *Agent) HandleMessage(ctx context.Context, sessionID, text string) (*contracts.ChatResponse, error) {
	start := time.Now()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	a.logger.Info("[Agent] [%s] User: %s", sessionID, text)

	history, err := a.sessions.History(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	userMsg := llm.Message{Role: "user", Content: text}
	messages = append(messages, userMsg)
	newMessages := []llm.Message{userMsg}

	toolDefs := a.toolDefs()
	toolCalls := 0
	var lastToolName, lastToolResult string

	var reply llm.Message
	for round := 0; ; round++ {
		reply, err = a.llm.Chat(ctx, messages, toolDefs)
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}
		messages = append(messages, reply)
		newMessages = append(newMessages, reply)

		if len(reply.ToolCalls) == 0 {
			break
		}
		if round == maxToolRounds-1 {
			a.logger.Error("[Agent] [%s] Tool round limit reached, forcing final answer", sessionID)
			break
		}

		for _, call := range reply.ToolCalls {
			result := a.runTool(ctx, sessionID, call)
			lastToolName = call.Function.Name
			lastToolResult = result
			toolCalls++

			toolMsg := llm.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
			}
			messages = append(messages, toolMsg)
			newMessages = append(newMessages, toolMsg)
		}
	}

	replyText := reply.Content
	if replyText == "" {
		replyText = fallbackReply
	}

	cards := extractCards(lastToolName, lastToolResult)

	if err := a.sessions.AppendTurns(ctx, sessionID, newMessages); err != nil {
		// The reply is already computed; losing history is worth a log
		// line, not a failed turn.
		a.logger.Error("[Agent] [%s] Failed to persist turn: %v", sessionID, err)
	}

	a.publishTurn(ctx, contracts.ChatTurnEvent{
		SessionID:        sessionID,
		UserMessage:      text,
		AssistantMessage: replyText,
		VehicleIDs:       cardIDs(cards),
		ToolCalls:        toolCalls,
		ElapsedMS:        time.Since(start).Milliseconds(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	})

	a.logger.Info("[Agent] [%s] Replied in %dms (%d tool calls, %d cards)",
		sessionID, time.Since(start).Milliseconds(), toolCalls, len(cards))

	return &contracts.ChatResponse{
		SessionID: sessionID,
		Message:   replyText,
		Vehicles:  cards,
	}, nil
}

// ClearSession drops a conversation's history.
func (a *Agent) ClearSession(ctx context.Context, sessionID string) error {
	return a.sessions.Clear(ctx, sessionID)
}

// runTool dispatches one tool call and publishes its telemetry event.
// Tool failures are reported back to the model as error payloads so it
// can correct itself.
func (a *Agent) runTool(ctx context.Context, sessionID string, call llm.ToolCall) string {
	started := time.Now()
	result, err := a.registry.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
	failed := err != nil
	if failed {
		a.logger.Error("[Agent] [%s] Tool %s failed: %v", sessionID, call.Function.Name, err)
		result = fmt.Sprintf(`{"error": %q}`, err.Error())
	}

	a.publishToolCall(ctx, contracts.ToolCallEvent{
		SessionID:  sessionID,
		Tool:       call.Function.Name,
		Arguments:  call.Function.Arguments,
		DurationMS: time.Since(started).Milliseconds(),
		Failed:     failed,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})

	return result
}

// toolDefs converts the registry's definitions into the wire format
// advertised to the model.
func (a *Agent) toolDefs() []llm.Tool {
	defs := a.registry.Definitions()
	out := make([]llm.Tool, len(defs))
	for i, d := range defs {
		out[i] = llm.Tool{
			Type: "function",
			Function: llm.Function{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Schema,
			},
		}
	}
	return out
}

// publishTurn and publishToolCall are fire-and-forget: the telemetry
// plane must never fail a chat turn.
func (a *Agent) publishTurn(ctx context.Context, event contracts.ChatTurnEvent) {
	if a.broker == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := a.broker.Publish(ctx, contracts.TopicChatTurns, event.SessionID, data); err != nil {
		a.logger.Debug("[Agent] Failed to publish chat turn: %v", err)
	}
}

func (a *Agent) publishToolCall(ctx context.Context, event contracts.ToolCallEvent) {
	if a.broker == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := a.broker.Publish(ctx, contracts.TopicToolCalls, event.SessionID, data); err != nil {
		a.logger.Debug("[Agent] Failed to publish tool call: %v", err)
	}
}

// extractCards derives the vehicle cards attached to the response from
// the LAST tool result of the turn. Search and compare results carry a
// vehicles array; a detail lookup is a single vehicle object. Error
// payloads produce no cards.
func extractCards(toolName, result string) []contracts.VehicleCard {
	cards := []contracts.VehicleCard{}
	if result == "" {
		return cards
	}

	switch toolName {
	case tools.ToolGetVehicleDetails:
		var v contracts.Vehicle
		if err := json.Unmarshal([]byte(result), &v); err == nil && v.ID != 0 {
			cards = append(cards, contracts.CardFromVehicle(v))
		}
	case tools.ToolSearchInventory, tools.ToolCompareVehicles:
		var payload struct {
			Vehicles []contracts.Vehicle `json:"vehicles"`
		}
		if err := json.Unmarshal([]byte(result), &payload); err == nil {
			for _, v := range payload.Vehicles {
				if v.ID != 0 {
					cards = append(cards, contracts.CardFromVehicle(v))
				}
			}
		}
	}
	return cards
}

func cardIDs(cards []contracts.VehicleCard) []int {
	if len(cards) == 0 {
		return nil
	}
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
