package inventory

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to search results.
type SortKey string

const (
	SortPriceAscending   SortKey = "price_ascending"
	SortPriceDescending  SortKey = "price_descending"
	SortMileageAscending SortKey = "mileage_ascending"
	SortPowerDescending  SortKey = "power_descending"
)

// DefaultLimit is the result cap applied when a spec does not raise it.
const DefaultLimit = 5

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortPriceAscending, SortPriceDescending, SortMileageAscending, SortPowerDescending:
		return true
	}
	return false
}

// sleeperCabins is the expansion list for the SLEEPER alias class.
// "Sleeper" is a category buyers ask for, not a label manufacturers
// print; any of these cabin designations qualifies.
var sleeperCabins = []string{
	"SLEEPER", "SPACE", "HIGHLINE", "GLOBETROTTER", "GIGASPACE",
	"TOPLINE", "SUPER", "BIGSPACE", "STREAMSPACE", "LONG",
	"L-CAB", "R-SERIES", "S-SERIES",
}

// FilterSpec is a caller-supplied query. Every field is optional; nil
// means the dimension is unconstrained. All supplied predicates are
// ANDed together.
type FilterSpec struct {
	Brand         *string `json:"brand,omitempty"`
	Model         *string `json:"model,omitempty"`
	Configuration *string `json:"configuration,omitempty"`
	EuroNorm      *int    `json:"euro_norm,omitempty"`
	Gearbox       *string `json:"gearbox,omitempty"`
	Fuel          *string `json:"fuel,omitempty"`
	Cabin         *string `json:"cabin,omitempty"`

	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	MinPower   *int     `json:"min_power,omitempty"`
	MaxPower   *int     `json:"max_power,omitempty"`
	MinMileage *int     `json:"min_mileage,omitempty"`
	MaxMileage *int     `json:"max_mileage,omitempty"`

	IsNew   *bool `json:"is_new,omitempty"`
	MinBeds *int  `json:"min_beds,omitempty"`

	// Accepted for contract stability but never applied: the source
	// columns behind these flags are too sparsely populated to filter
	// on without collapsing most queries to zero results.
	HasRetarder        *bool `json:"has_retarder,omitempty"`
	HasAirConditioning *bool `json:"has_air_conditioning,omitempty"`

	// IncludeDamaged keeps explicitly damaged records in the result.
	// When false (the default) only records with IsDamaged set to true
	// are dropped; unknown damage state is kept.
	IncludeDamaged bool `json:"include_damaged,omitempty"`

	SortKey SortKey `json:"sort_key,omitempty"`
	Limit   int     `json:"limit,omitempty"`
}

// Validate checks the spec's own fields. It does not touch records.
func (s FilterSpec) Validate() error {
	if s.SortKey != "" && !s.SortKey.Valid() {
		return &ValidationError{
			Field:  "sort_key",
			Reason: fmt.Sprintf("unknown sort key %q", string(s.SortKey)),
		}
	}
	if s.Limit < 0 {
		return &ValidationError{
			Field:  "limit",
			Reason: fmt.Sprintf("must not be negative, got %d", s.Limit),
		}
	}
	return nil
}

// sortKeyOrDefault resolves the effective sort key.
func (s FilterSpec) sortKeyOrDefault() SortKey {
	if s.SortKey == "" {
		return SortPriceAscending
	}
	return s.SortKey
}

// limitOrDefault resolves the effective result cap.
func (s FilterSpec) limitOrDefault() int {
	if s.Limit == 0 {
		return DefaultLimit
	}
	return s.Limit
}

// Filter returns the subset of records matching every supplied
// predicate of the spec. It is a pure function: the input slice is
// not modified and evaluation order cannot change the outcome since
// all predicates are conjunctive.
func Filter(records []Record, spec FilterSpec) []Record {
	matched := make([]Record, 0, len(records))
	for _, r := range records {
		if matches(r, spec) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matches(r Record, spec FilterSpec) bool {
	// Damage default-exclusion: only an explicit damaged flag drops a
	// record; unknown damage state stays in.
	if !spec.IncludeDamaged && r.IsDamaged.True() {
		return false
	}

	// A price-bounded query can never be satisfied by a record whose
	// price is unknown or zero, regardless of the bounds themselves.
	if spec.MinPrice != nil || spec.MaxPrice != nil {
		price, known := r.KnownPrice()
		if !known {
			return false
		}
		if spec.MinPrice != nil && price < *spec.MinPrice {
			return false
		}
		if spec.MaxPrice != nil && price > *spec.MaxPrice {
			return false
		}
	}

	if spec.Brand != nil && !equalFold(r.Brand, *spec.Brand) {
		return false
	}

	// Model is a containment match so "XF" finds "XF105".
	if spec.Model != nil && !containsFold(r.Model, *spec.Model) {
		return false
	}

	if spec.Configuration != nil && !equalFold(r.Configuration, *spec.Configuration) {
		return false
	}

	if spec.EuroNorm != nil && (r.EuroNorm == nil || *r.EuroNorm != *spec.EuroNorm) {
		return false
	}

	if spec.Gearbox != nil && !equalFold(r.Gearbox, *spec.Gearbox) {
		return false
	}

	if spec.Fuel != nil && !equalFold(r.Fuel, *spec.Fuel) {
		return false
	}

	if spec.Cabin != nil && !matchesCabin(r.Cabin, *spec.Cabin) {
		return false
	}

	if spec.MinPower != nil || spec.MaxPower != nil {
		if r.Power == nil {
			return false
		}
		if spec.MinPower != nil && *r.Power < *spec.MinPower {
			return false
		}
		if spec.MaxPower != nil && *r.Power > *spec.MaxPower {
			return false
		}
	}

	if spec.MinMileage != nil || spec.MaxMileage != nil {
		if r.Mileage == nil {
			return false
		}
		if spec.MinMileage != nil && *r.Mileage < *spec.MinMileage {
			return false
		}
		if spec.MaxMileage != nil && *r.Mileage > *spec.MaxMileage {
			return false
		}
	}

	if spec.IsNew != nil {
		if *spec.IsNew {
			// Only records explicitly flagged new qualify.
			if !r.IsNew.True() {
				return false
			}
		} else {
			// Explicitly used or unknown both qualify, mirroring the
			// damage rule's tri-state policy on the negative side.
			if r.IsNew.True() {
				return false
			}
		}
	}

	if spec.MinBeds != nil {
		if r.BedCount == nil || *r.BedCount < *spec.MinBeds {
			return false
		}
	}

	// HasRetarder / HasAirConditioning are intentionally not applied.

	return true
}

// matchesCabin implements the two cabin modes: the SLEEPER alias class
// expands to a match-any-of list, every other keyword is a plain
// case-insensitive containment match.
func matchesCabin(cabin, keyword string) bool {
	if cabin == "" {
		return false
	}
	upper := strings.ToUpper(cabin)
	if strings.EqualFold(keyword, "SLEEPER") {
		for _, alias := range sleeperCabins {
			if strings.Contains(upper, alias) {
				return true
			}
		}
		return false
	}
	return strings.Contains(upper, strings.ToUpper(keyword))
}

// equalFold is a case-insensitive equality where an unknown (empty)
// record value never matches.
func equalFold(field, want string) bool {
	return field != "" && strings.EqualFold(field, want)
}

// containsFold is a case-insensitive containment where an unknown
// (empty) record value never matches.
func containsFold(field, want string) bool {
	return field != "" && strings.Contains(strings.ToUpper(field), strings.ToUpper(want))
}
