// Package contracts defines the wire types shared by the HTTP API,
// the tool layer and the telemetry plane.
package contracts

import "truckfinder-agent/src/inventory"

// Vehicle is the full vehicle representation exposed over HTTP and to
// the model through tools. Optional attributes are pointers so that
// unknown stays distinguishable from zero; unknown flags are omitted
// from the payload entirely. A price of 0 is serialized (it means
// "price on request"), only an absent price is dropped.
type Vehicle struct {
	ID            int    `json:"id"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	ModelExtended string `json:"model_extended,omitempty"`
	Configuration string `json:"configuration,omitempty"`
	Cabin         string `json:"cabin,omitempty"`
	Gearbox       string `json:"gearbox,omitempty"`
	Fuel          string `json:"fuel,omitempty"`
	Suspension    string `json:"suspension,omitempty"`
	DriverSide    string `json:"driver_side,omitempty"`

	EuroNorm    *int     `json:"euro_norm,omitempty"`
	Power       *int     `json:"power,omitempty"`
	Mileage     *int     `json:"mileage,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	BedCount    *int     `json:"bed_count,omitempty"`
	TankCount   *int     `json:"tank_count,omitempty"`
	Wheelbase   *int     `json:"wheelbase,omitempty"`
	Length      *int     `json:"length,omitempty"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	TotalWeight *int     `json:"total_weight,omitempty"`
	NetWeight   *int     `json:"net_weight,omitempty"`

	RegisteredAt string `json:"registered_at,omitempty"`
	ProductionAt string `json:"production_at,omitempty"`

	IsNew              *bool `json:"is_new,omitempty"`
	IsDamaged          *bool `json:"is_damaged,omitempty"`
	HasRetarder        *bool `json:"has_retarder,omitempty"`
	HasAirConditioning *bool `json:"has_air_conditioning,omitempty"`
	HasHydraulics      *bool `json:"has_hydraulics,omitempty"`
	HasCrane           *bool `json:"has_crane,omitempty"`
	Mega               *bool `json:"mega,omitempty"`
}

// VehicleCard is the trimmed vehicle payload attached to chat
// responses for frontend rendering.
type VehicleCard struct {
	ID                 int      `json:"id"`
	Brand              string   `json:"brand,omitempty"`
	ModelExtended      string   `json:"model_extended,omitempty"`
	Configuration      string   `json:"configuration,omitempty"`
	Cabin              string   `json:"cabin,omitempty"`
	EuroNorm           *int     `json:"euro_norm,omitempty"`
	Gearbox            string   `json:"gearbox,omitempty"`
	Fuel               string   `json:"fuel,omitempty"`
	Power              *int     `json:"power,omitempty"`
	Mileage            *int     `json:"mileage,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	BedCount           *int     `json:"bed_count,omitempty"`
	IsNew              *bool    `json:"is_new,omitempty"`
	HasRetarder        *bool    `json:"has_retarder,omitempty"`
	HasAirConditioning *bool    `json:"has_air_conditioning,omitempty"`
}

// ChatRequest is an incoming chat message.
type ChatRequest struct {
	// SessionID identifies the conversation thread.
	SessionID string `json:"session_id"`
	// Message is the user's text.
	Message string `json:"message"`
}

// ChatResponse is the assistant's reply for one chat turn.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	// Vehicles carries the cards extracted from the last tool result,
	// for the frontend to render alongside the reply.
	Vehicles []VehicleCard `json:"vehicles"`
}

// SearchResult is the payload the search_inventory tool hands back to
// the model. On invalid filters Error is set and the result is empty.
type SearchResult struct {
	Count          int                   `json:"count"`
	FiltersApplied *inventory.FilterSpec `json:"filters_applied,omitempty"`
	Vehicles       []Vehicle             `json:"vehicles"`
	Summaries      []string              `json:"summaries,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// CompareResult is the payload the compare_vehicles tool hands back
// to the model.
type CompareResult struct {
	VehicleCount   int       `json:"vehicle_count"`
	Vehicles       []Vehicle `json:"vehicles"`
	ComparisonText string    `json:"comparison_text"`
}

// ToolError is the error envelope a tool hands back to the model in
// place of its normal payload.
type ToolError struct {
	Error string `json:"error"`
}

// ErrorResponse is the JSON error envelope for HTTP handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InventoryPage is the /inventory listing payload.
type InventoryPage struct {
	Count    int       `json:"count"`
	Vehicles []Vehicle `json:"vehicles"`
}

// Meta is the /meta.json payload: per-dimension value counts and
// ranges for building the frontend filter sidebar. Damaged vehicles
// are excluded from every figure.
type Meta struct {
	Total          int          `json:"total"`
	Brands         []FacetCount `json:"brands"`
	Configurations []FacetCount `json:"configurations"`
	EuroNorms      []int        `json:"euro_norms"`
	Gearboxes      []FacetCount `json:"gearboxes"`
	Fuels          []FacetCount `json:"fuels"`
	Conditions     Conditions   `json:"conditions"`
	PriceRange     FloatRange   `json:"price_range"`
	PowerRange     IntRange     `json:"power_range"`

	// Usage is filled in when an analytics agent is wired up.
	Usage *UsageSnapshot `json:"usage,omitempty"`
}

// FacetCount is one value of a categorical dimension with its number
// of occurrences, ordered most-common first.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Conditions splits the fleet into new and used. Vehicles with an
// unknown condition count as used.
type Conditions struct {
	New  int `json:"new"`
	Used int `json:"used"`
}

// FloatRange is an observed min/max over a float dimension.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntRange is an observed min/max over an integer dimension.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ChatTurnEvent records one completed chat exchange.
// Published to: truckfinder.chat.turns
// Key: {session_id}
type ChatTurnEvent struct {
	SessionID        string `json:"session_id"`
	UserMessage      string `json:"user_message"`
	AssistantMessage string `json:"assistant_message"`
	VehicleIDs       []int  `json:"vehicle_ids,omitempty"`
	ToolCalls        int    `json:"tool_calls"`
	ElapsedMS        int64  `json:"elapsed_ms"`
	Timestamp        string `json:"timestamp"`
}

// ToolCallEvent records a single tool invocation by the agent.
// Published to: truckfinder.tools.calls
// Key: {session_id}
type ToolCallEvent struct {
	SessionID  string `json:"session_id"`
	Tool       string `json:"tool"`
	Arguments  string `json:"arguments"`
	DurationMS int64  `json:"duration_ms"`
	Failed     bool   `json:"failed,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// UsageSnapshot summarizes recorded telemetry for the stats command
// and /meta.json enrichment.
type UsageSnapshot struct {
	ChatTurns  int            `json:"chat_turns"`
	ToolCounts map[string]int `json:"tool_counts"`
}

// Topic names for the telemetry plane.
const (
	// TopicChatTurns carries one event per completed chat exchange.
	TopicChatTurns = "truckfinder.chat.turns"

	// TopicToolCalls carries one event per agent tool invocation.
	TopicToolCalls = "truckfinder.tools.calls"
)
