package tools

import "encoding/json"

// Argument schemas advertised with each tool. Field names and enums
// mirror the filter contract; additionalProperties is false
// everywhere so hallucinated fields come back as correctable errors.
var (
	searchSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"brand": {
				"type": "string",
				"description": "Brand name: DAF, SCANIA, MERCEDES, VOLVO, MAN, RENAULT, IVECO, FORD, GINAF"
			},
			"model": {
				"type": "string",
				"description": "Model name or fragment, e.g. XF, ACTROS, FH, S, R, TGX"
			},
			"configuration": {
				"type": "string",
				"description": "Axle configuration: 4X2, 6X2, 6X4, 8X4"
			},
			"euro_norm": {
				"type": "integer",
				"description": "Euro emission norm: 2, 4, 5, 6"
			},
			"gearbox": {
				"type": "string",
				"description": "Gearbox type: automatic, manual, semi-automatic"
			},
			"fuel": {
				"type": "string",
				"description": "Fuel type: diesel, electric, lng, cng"
			},
			"cabin": {
				"type": "string",
				"description": "Cabin keyword, e.g. SLEEPER, HIGHLINE, GLOBETROTTER, GIGASPACE, SPACE"
			},
			"min_price": {
				"type": "number",
				"description": "Minimum price in EUR"
			},
			"max_price": {
				"type": "number",
				"description": "Maximum price in EUR"
			},
			"min_power": {
				"type": "integer",
				"description": "Minimum engine power in HP"
			},
			"max_power": {
				"type": "integer",
				"description": "Maximum engine power in HP"
			},
			"min_mileage": {
				"type": "integer",
				"description": "Minimum mileage in km"
			},
			"max_mileage": {
				"type": "integer",
				"description": "Maximum mileage in km"
			},
			"is_new": {
				"type": "boolean",
				"description": "True for new vehicles only, false for used only"
			},
			"min_beds": {
				"type": "integer",
				"description": "Minimum number of beds in the cabin"
			},
			"has_retarder": {
				"type": "boolean",
				"description": "Must have a retarder"
			},
			"has_air_conditioning": {
				"type": "boolean",
				"description": "Must have air conditioning"
			},
			"include_damaged": {
				"type": "boolean",
				"description": "Include damaged vehicles (default false)"
			},
			"sort_key": {
				"type": "string",
				"enum": ["price_ascending", "price_descending", "mileage_ascending", "power_descending"],
				"description": "Result ordering (default price_ascending)"
			},
			"limit": {
				"type": "integer",
				"description": "Maximum number of results (default 5)"
			}
		},
		"additionalProperties": false
	}`)

	detailSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"vehicle_id": {
				"type": "integer",
				"description": "The vehicle's unique ID"
			}
		},
		"required": ["vehicle_id"],
		"additionalProperties": false
	}`)

	compareSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"vehicle_ids": {
				"type": "array",
				"items": {"type": "integer"},
				"description": "2 to 5 vehicle IDs to compare"
			}
		},
		"required": ["vehicle_ids"],
		"additionalProperties": false
	}`)
)
