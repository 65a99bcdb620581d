package api

import (
	"fmt"
	"net/url"
	"strconv"

	"truckfinder-agent/src/inventory"
)

// listLimit is the default page size for /inventory. Browsing the
// catalogue warrants a larger page than the chat default of 5.
const listLimit = 20

// specFromQuery maps /inventory query parameters onto a FilterSpec.
// Unknown parameter names are rejected so a misspelled filter fails
// loudly instead of silently matching everything.
func specFromQuery(values url.Values) (inventory.FilterSpec, error) {
	spec := inventory.FilterSpec{Limit: listLimit}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		raw := vals[0]

		var err error
		switch key {
		case "brand":
			spec.Brand = &raw
		case "model":
			spec.Model = &raw
		case "configuration":
			spec.Configuration = &raw
		case "euro_norm":
			spec.EuroNorm, err = intParam(key, raw)
		case "gearbox":
			spec.Gearbox = &raw
		case "fuel":
			spec.Fuel = &raw
		case "cabin":
			spec.Cabin = &raw
		case "min_price":
			spec.MinPrice, err = floatParam(key, raw)
		case "max_price":
			spec.MaxPrice, err = floatParam(key, raw)
		case "min_power":
			spec.MinPower, err = intParam(key, raw)
		case "max_power":
			spec.MaxPower, err = intParam(key, raw)
		case "min_mileage":
			spec.MinMileage, err = intParam(key, raw)
		case "max_mileage":
			spec.MaxMileage, err = intParam(key, raw)
		case "is_new":
			spec.IsNew, err = boolParam(key, raw)
		case "min_beds":
			spec.MinBeds, err = intParam(key, raw)
		case "include_damaged":
			var b *bool
			if b, err = boolParam(key, raw); err == nil {
				spec.IncludeDamaged = *b
			}
		case "sort_key":
			spec.SortKey = inventory.SortKey(raw)
		case "limit":
			var limit *int
			if limit, err = intParam(key, raw); err == nil {
				spec.Limit = *limit
			}
		default:
			return inventory.FilterSpec{}, fmt.Errorf("unknown query parameter: %s", key)
		}
		if err != nil {
			return inventory.FilterSpec{}, err
		}
	}

	return spec, nil
}

func vehicleID(vars map[string]string) (int, error) {
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return 0, fmt.Errorf("invalid vehicle id %q", vars["id"])
	}
	return id, nil
}

func intParam(key, raw string) (*int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return &v, nil
}

func floatParam(key, raw string) (*float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return &v, nil
}

func boolParam(key, raw string) (*bool, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a boolean", key, raw)
	}
	return &v, nil
}
