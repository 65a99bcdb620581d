// Package analytics provides the telemetry consumer: it subscribes to
// the chat and tool topics, persists events through the interaction
// store, and serves usage snapshots back to the API and CLI.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"truckfinder-agent/src/broker"
	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/logger"
	"truckfinder-agent/src/store"
)

// consumerGroup identifies this agent on the telemetry topics, so
// multiple replicas share the work in distributed mode.
const consumerGroup = "truckfinder-analytics"

// Agent consumes telemetry events and persists them.
type Agent struct {
	broker broker.Broker
	store  store.InteractionStore
	logger logger.Logger
}

// NewAgent creates a new analytics agent.
func NewAgent(brk broker.Broker, st store.InteractionStore, log logger.Logger) *Agent {
	return &Agent{
		broker: brk,
		store:  st,
		logger: log,
	}
}

// Run subscribes to both telemetry topics and processes events until
// the context is cancelled or both channels close.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("[Analytics] Starting...")

	turns, err := a.broker.Subscribe(ctx, contracts.TopicChatTurns, consumerGroup)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicChatTurns, err)
	}
	calls, err := a.broker.Subscribe(ctx, contracts.TopicToolCalls, consumerGroup)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicToolCalls, err)
	}

	a.logger.Info("[Analytics] Listening on '%s' and '%s'...",
		contracts.TopicChatTurns, contracts.TopicToolCalls)

	for {
		select {
		case msg, ok := <-turns:
			if !ok {
				turns = nil
				break
			}
			if err := a.processTurn(ctx, msg); err != nil {
				a.logger.Error("[Analytics] Error processing chat turn: %v", err)
			}

		case msg, ok := <-calls:
			if !ok {
				calls = nil
				break
			}
			if err := a.processToolCall(ctx, msg); err != nil {
				a.logger.Error("[Analytics] Error processing tool call: %v", err)
			}

		case <-ctx.Done():
			a.logger.Info("[Analytics] Context cancelled, shutting down")
			return ctx.Err()
		}

		if turns == nil && calls == nil {
			a.logger.Info("[Analytics] Both channels closed, shutting down")
			return nil
		}
	}
}

// Snapshot reports what has been recorded so far: total chat turns and
// per-tool invocation counts.
func (a *Agent) Snapshot(ctx context.Context) (contracts.UsageSnapshot, error) {
	counts, err := a.store.ToolCounts(ctx)
	if err != nil {
		return contracts.UsageSnapshot{}, fmt.Errorf("failed to read tool counts: %w", err)
	}
	turns, err := a.store.TurnCount(ctx)
	if err != nil {
		return contracts.UsageSnapshot{}, fmt.Errorf("failed to read turn count: %w", err)
	}
	return contracts.UsageSnapshot{
		ChatTurns:  turns,
		ToolCounts: counts,
	}, nil
}

func (a *Agent) processTurn(ctx context.Context, msg broker.Message) error {
	var event contracts.ChatTurnEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal chat turn: %w", err)
	}

	if err := a.store.SaveChatTurn(ctx, event); err != nil {
		return err
	}

	a.logger.Debug("[Analytics] Turn [%s]: %d tool calls, %dms",
		event.SessionID, event.ToolCalls, event.ElapsedMS)
	return nil
}

func (a *Agent) processToolCall(ctx context.Context, msg broker.Message) error {
	var event contracts.ToolCallEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal tool call: %w", err)
	}

	if err := a.store.SaveToolCall(ctx, event); err != nil {
		return err
	}

	a.logger.Debug("[Analytics] Tool [%s]: %s in %dms (failed=%v)",
		event.SessionID, event.Tool, event.DurationMS, event.Failed)
	return nil
}
