package inventory

import "testing"

func TestComputeFacets(t *testing.T) {
	records := []Record{
		{ID: 1, Brand: "DAF", Configuration: "4X2", Gearbox: "automatic", Fuel: "diesel", EuroNorm: ip(6), Price: fp(30000), Power: ip(480), IsNew: FlagTrue},
		{ID: 2, Brand: "DAF", Configuration: "6X2", Gearbox: "manual", Fuel: "diesel", EuroNorm: ip(5), Price: fp(20000), Power: ip(420), IsNew: FlagFalse},
		{ID: 3, Brand: "SCANIA", Gearbox: "automatic", EuroNorm: ip(6), Price: fp(0), Power: ip(500)},
		{ID: 4, Brand: "VOLVO", IsDamaged: FlagTrue, Price: fp(5000)}, // excluded
	}

	f := ComputeFacets(records)

	if f.Total != 3 {
		t.Errorf("Total = %d, expected 3 (damaged excluded)", f.Total)
	}

	if len(f.Brands) != 2 {
		t.Fatalf("Brands len = %d, expected 2", len(f.Brands))
	}
	if f.Brands[0].Value != "DAF" || f.Brands[0].Count != 2 {
		t.Errorf("top brand = %+v, expected DAF with count 2", f.Brands[0])
	}
	if f.Brands[1].Value != "SCANIA" || f.Brands[1].Count != 1 {
		t.Errorf("second brand = %+v, expected SCANIA with count 1", f.Brands[1])
	}

	if len(f.EuroNorms) != 2 || f.EuroNorms[0] != 5 || f.EuroNorms[1] != 6 {
		t.Errorf("EuroNorms = %v, expected [5 6]", f.EuroNorms)
	}

	if f.ConditionNew != 1 {
		t.Errorf("ConditionNew = %d, expected 1", f.ConditionNew)
	}
	// Unknown condition counts as used.
	if f.ConditionUsed != 2 {
		t.Errorf("ConditionUsed = %d, expected 2", f.ConditionUsed)
	}

	// Zero price does not contribute to the price range.
	if f.PriceRange.Min != 20000 || f.PriceRange.Max != 30000 {
		t.Errorf("PriceRange = %+v, expected [20000, 30000]", f.PriceRange)
	}
	if f.PowerRange.Min != 420 || f.PowerRange.Max != 500 {
		t.Errorf("PowerRange = %+v, expected [420, 500]", f.PowerRange)
	}
}

func TestComputeFacetsEmpty(t *testing.T) {
	f := ComputeFacets(nil)

	if f.Total != 0 {
		t.Errorf("Total = %d, expected 0", f.Total)
	}
	if len(f.Brands) != 0 {
		t.Errorf("Brands = %v, expected empty", f.Brands)
	}
	if f.PriceRange.Min != 0 || f.PriceRange.Max != 0 {
		t.Errorf("PriceRange = %+v, expected zero range", f.PriceRange)
	}
}

func TestFacetCountTieOrder(t *testing.T) {
	records := []Record{
		{ID: 1, Brand: "VOLVO"},
		{ID: 2, Brand: "DAF"},
		{ID: 3, Brand: "SCANIA"},
		{ID: 4, Brand: "SCANIA"},
	}

	f := ComputeFacets(records)
	if f.Brands[0].Value != "SCANIA" {
		t.Errorf("top brand = %q, expected SCANIA", f.Brands[0].Value)
	}
	// Equal counts order alphabetically.
	if f.Brands[1].Value != "DAF" || f.Brands[2].Value != "VOLVO" {
		t.Errorf("tied brands = [%q %q], expected [DAF VOLVO]", f.Brands[1].Value, f.Brands[2].Value)
	}
}
