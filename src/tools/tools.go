// Package tools implements the inventory tools exposed to the model.
// The same registry backs both the chat agent's function calls and
// the MCP server, so tool behavior cannot drift between transports.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/logger"
)

// Tool names.
const (
	ToolSearchInventory   = "search_inventory"
	ToolGetVehicleDetails = "get_vehicle_details"
	ToolCompareVehicles   = "compare_vehicles"
)

// Definition describes one callable tool for the model.
type Definition struct {
	Name        string
	Description string
	// Schema is the JSON Schema for the tool's arguments.
	Schema json.RawMessage
}

// Registry holds the tool handlers over one inventory engine.
type Registry struct {
	engine *inventory.Engine
	logger logger.Logger
}

// NewRegistry creates a tool registry backed by the given engine.
func NewRegistry(engine *inventory.Engine, log logger.Logger) *Registry {
	return &Registry{engine: engine, logger: log}
}

// Definitions lists the tools in the order they are advertised to the
// model.
func (r *Registry) Definitions() []Definition {
	return []Definition{
		{
			Name:        ToolSearchInventory,
			Description: "Search the tractor head inventory using structured filters. Returns matching vehicles with one-line summaries.",
			Schema:      searchSchema,
		},
		{
			Name:        ToolGetVehicleDetails,
			Description: "Get full details for a single vehicle by its ID.",
			Schema:      detailSchema,
		},
		{
			Name:        ToolCompareVehicles,
			Description: "Compare 2 to 5 vehicles side by side.",
			Schema:      compareSchema,
		},
	}
}

// Dispatch routes a tool call by name. The returned string is the
// JSON payload for the model; recoverable problems (bad filters,
// unknown ids) are reported inside the payload so the model can
// correct itself. Only marshalling failures and unknown tool names
// surface as errors.
func (r *Registry) Dispatch(ctx context.Context, name, arguments string) (string, error) {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	r.logger.Debug("[Tools] %s %s", name, arguments)

	switch name {
	case ToolSearchInventory:
		return r.searchInventory(arguments)
	case ToolGetVehicleDetails:
		return r.getVehicleDetails(arguments)
	case ToolCompareVehicles:
		return r.compareVehicles(arguments)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func (r *Registry) searchInventory(arguments string) (string, error) {
	spec, err := decodeSpec(arguments)
	if err != nil {
		r.logger.Debug("[Tools] Invalid filters: %v", err)
		return marshal(contracts.SearchResult{
			Error:    fmt.Sprintf("Invalid filters: %v", err),
			Vehicles: []contracts.Vehicle{},
		})
	}

	records, err := r.engine.Search(spec)
	if err != nil {
		r.logger.Debug("[Tools] Search rejected: %v", err)
		return marshal(contracts.SearchResult{
			Error:    fmt.Sprintf("Invalid filters: %v", err),
			Vehicles: []contracts.Vehicle{},
		})
	}

	summaries := make([]string, len(records))
	for i, rec := range records {
		summaries[i] = rec.Summary()
	}

	return marshal(contracts.SearchResult{
		Count:          len(records),
		FiltersApplied: &spec,
		Vehicles:       contracts.VehiclesFromRecords(records),
		Summaries:      summaries,
	})
}

func (r *Registry) getVehicleDetails(arguments string) (string, error) {
	var args struct {
		VehicleID int `json:"vehicle_id"`
	}
	if err := decodeStrict(arguments, &args); err != nil {
		return marshal(contracts.ToolError{Error: fmt.Sprintf("Invalid arguments: %v", err)})
	}

	rec, err := r.engine.Get(args.VehicleID)
	if err != nil {
		return marshal(contracts.ToolError{
			Error: fmt.Sprintf("Vehicle with ID %d not found.", args.VehicleID),
		})
	}

	return marshal(contracts.VehicleFromRecord(rec))
}

func (r *Registry) compareVehicles(arguments string) (string, error) {
	var args struct {
		VehicleIDs []int `json:"vehicle_ids"`
	}
	if err := decodeStrict(arguments, &args); err != nil {
		return marshal(contracts.ToolError{Error: fmt.Sprintf("Invalid arguments: %v", err)})
	}

	cmp, err := r.engine.Compare(args.VehicleIDs)
	if err != nil {
		return marshal(contracts.ToolError{Error: err.Error()})
	}

	return marshal(contracts.CompareResult{
		VehicleCount:   len(cmp.Records),
		Vehicles:       contracts.VehiclesFromRecords(cmp.Records),
		ComparisonText: cmp.Text(),
	})
}

// decodeSpec reads a filter specification, rejecting unknown keys so
// misspelled filters fail loudly instead of silently matching
// everything.
func decodeSpec(arguments string) (inventory.FilterSpec, error) {
	var spec inventory.FilterSpec
	if err := decodeStrict(arguments, &spec); err != nil {
		return inventory.FilterSpec{}, err
	}
	return spec, nil
}

func decodeStrict(arguments string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(arguments))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func marshal(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return string(data), nil
}
