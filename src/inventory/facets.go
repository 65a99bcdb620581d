package inventory

import "sort"

// Facets summarizes the distinct values the inventory offers per
// filterable dimension, for sidebar filters and the metadata endpoint.
// Explicitly damaged records are left out, matching the engine's
// default exclusion.
type Facets struct {
	Total          int
	Brands         []FacetCount
	Configurations []FacetCount
	EuroNorms      []int
	Gearboxes      []FacetCount
	Fuels          []FacetCount
	ConditionNew   int
	ConditionUsed  int
	PriceRange     FloatRange
	PowerRange     IntRange
}

// FacetCount is one categorical value and how many records carry it.
type FacetCount struct {
	Value string
	Count int
}

// FloatRange is an observed min/max over known values.
type FloatRange struct {
	Min float64
	Max float64
}

// IntRange is an observed min/max over known values.
type IntRange struct {
	Min int
	Max int
}

// ComputeFacets scans the records once and aggregates per-dimension
// counts and ranges. Unknown values are not counted; a record with an
// unknown new/used state counts as used.
func ComputeFacets(records []Record) Facets {
	brands := make(map[string]int)
	configurations := make(map[string]int)
	gearboxes := make(map[string]int)
	fuels := make(map[string]int)
	euroNorms := make(map[int]bool)

	f := Facets{}
	priceSeen := false
	powerSeen := false

	for _, r := range records {
		if r.IsDamaged.True() {
			continue
		}
		f.Total++

		if r.Brand != "" {
			brands[r.Brand]++
		}
		if r.Configuration != "" {
			configurations[r.Configuration]++
		}
		if r.Gearbox != "" {
			gearboxes[r.Gearbox]++
		}
		if r.Fuel != "" {
			fuels[r.Fuel]++
		}
		if r.EuroNorm != nil && *r.EuroNorm > 0 {
			euroNorms[*r.EuroNorm] = true
		}

		if r.IsNew.True() {
			f.ConditionNew++
		} else {
			f.ConditionUsed++
		}

		if price, known := r.KnownPrice(); known {
			if !priceSeen || price < f.PriceRange.Min {
				f.PriceRange.Min = price
			}
			if !priceSeen || price > f.PriceRange.Max {
				f.PriceRange.Max = price
			}
			priceSeen = true
		}

		if r.Power != nil {
			if !powerSeen || *r.Power < f.PowerRange.Min {
				f.PowerRange.Min = *r.Power
			}
			if !powerSeen || *r.Power > f.PowerRange.Max {
				f.PowerRange.Max = *r.Power
			}
			powerSeen = true
		}
	}

	f.Brands = sortedCounts(brands)
	f.Configurations = sortedCounts(configurations)
	f.Gearboxes = sortedCounts(gearboxes)
	f.Fuels = sortedCounts(fuels)

	for norm := range euroNorms {
		f.EuroNorms = append(f.EuroNorms, norm)
	}
	sort.Ints(f.EuroNorms)

	return f
}

// sortedCounts orders facet values by count descending, then value
// ascending so equal counts render deterministically.
func sortedCounts(counts map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, FacetCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
