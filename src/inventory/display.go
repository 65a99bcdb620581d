package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Summary renders the one-line description used for result lists and
// LLM context, e.g.
//
//	[ID:271313] DAF XF 480 FT | 4X2 | SPACE CAB | 480 HP | Euro 6 | automatic | diesel | 420,000 km | €32,500
func (r Record) Summary() string {
	return fmt.Sprintf("[ID:%d] %s | %s | %s | %s | Euro %s | %s | %s | %s | %s",
		r.ID,
		fmtString(r.DisplayName()),
		fmtString(r.Configuration),
		fmtString(r.Cabin),
		fmtUnit(r.Power, " HP"),
		fmtInt(r.EuroNorm),
		fmtString(r.Gearbox),
		fmtString(r.Fuel),
		fmtKilometers(r.Mileage),
		fmtPrice(r))
}

// Detail renders the multi-line view for a single vehicle. Lines for
// attributes the source never provided are left out.
func (r Record) Detail() string {
	lines := []string{
		fmt.Sprintf("🚛 %s (ID: %d)", fmtString(r.DisplayName()), r.ID),
		"   Configuration: " + fmtString(r.Configuration),
		"   Cabin: " + fmtString(r.Cabin),
		"   Power: " + fmtUnit(r.Power, " HP"),
		"   Euro norm: " + fmtInt(r.EuroNorm),
		"   Gearbox: " + fmtString(r.Gearbox),
		"   Fuel: " + fmtString(r.Fuel),
		"   Mileage: " + fmtKilometers(r.Mileage),
		"   Price: " + fmtPrice(r),
		"   New: " + fmtFlag(r.IsNew),
		"   Retarder: " + fmtFlag(r.HasRetarder),
		"   Air conditioning: " + fmtFlag(r.HasAirConditioning),
	}
	if r.BedCount != nil {
		lines = append(lines, "   Beds: "+strconv.Itoa(*r.BedCount))
	}
	if r.Suspension != "" {
		lines = append(lines, "   Suspension: "+r.Suspension)
	}
	if r.TotalWeight != nil {
		lines = append(lines, "   Total weight: "+groupDigits(int64(*r.TotalWeight))+" kg")
	}
	return strings.Join(lines, "\n")
}
