package inventory

import (
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	r := Record{
		ID:                 271313,
		Brand:              "DAF",
		Model:              "XF",
		ModelExtended:      "XF 480 FT",
		Configuration:      "4X2",
		Cabin:              "SPACE CAB",
		Gearbox:            "automatic",
		Fuel:               "diesel",
		EuroNorm:           ip(6),
		Power:              ip(480),
		Mileage:            ip(420000),
		Price:              fp(32500),
		HasRetarder:        FlagTrue,
		HasAirConditioning: FlagTrue,
	}

	got := r.Summary()
	expected := "[ID:271313] DAF XF 480 FT | 4X2 | SPACE CAB | 480 HP | Euro 6 | automatic | diesel | 420,000 km | €32,500"
	if got != expected {
		t.Errorf("Summary() = %q, expected %q", got, expected)
	}
}

func TestSummaryUnknowns(t *testing.T) {
	r := Record{ID: 7, Brand: "SCANIA", Model: "R"}

	got := r.Summary()
	if !strings.Contains(got, "[ID:7] SCANIA R") {
		t.Errorf("Summary() = %q, expected leading id and name", got)
	}
	if !strings.Contains(got, "On request") {
		t.Errorf("Summary() = %q, expected price-on-request marker", got)
	}
	if !strings.Contains(got, "N/A") {
		t.Errorf("Summary() = %q, expected N/A for unknown fields", got)
	}
}

func TestDetail(t *testing.T) {
	r := Record{
		ID:            271313,
		Brand:         "DAF",
		ModelExtended: "XF 480 FT",
		Configuration: "4X2",
		Power:         ip(480),
		Price:         fp(32500),
		BedCount:      ip(1),
		Suspension:    "Luchtvering",
		TotalWeight:   ip(19500),
		IsNew:         FlagFalse,
		HasRetarder:   FlagTrue,
	}

	got := r.Detail()
	for _, want := range []string{
		"DAF XF 480 FT (ID: 271313)",
		"Configuration: 4X2",
		"Power: 480 HP",
		"Price: €32,500",
		"New: No",
		"Retarder: Yes",
		"Beds: 1",
		"Suspension: Luchtvering",
		"Total weight: 19,500 kg",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Detail() missing %q in:\n%s", want, got)
		}
	}
}

func TestDetailOmitsAbsentOptionals(t *testing.T) {
	r := Record{ID: 9, Brand: "MAN"}

	got := r.Detail()
	if strings.Contains(got, "Beds:") {
		t.Errorf("Detail() = %q, expected no beds line for unknown bed count", got)
	}
	if strings.Contains(got, "Suspension:") {
		t.Errorf("Detail() = %q, expected no suspension line", got)
	}
	if strings.Contains(got, "Total weight:") {
		t.Errorf("Detail() = %q, expected no total weight line", got)
	}
	if !strings.Contains(got, "Mileage: N/A") {
		t.Errorf("Detail() = %q, expected mileage N/A line", got)
	}
}
