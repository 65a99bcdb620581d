package dataset

import (
	"strings"
	"testing"

	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/logger"
)

func TestLoadFixture(t *testing.T) {
	records, err := Load("testdata/inventory_sample.csv", logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Five data rows, one without a vehicle id.
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, expected 4", len(records))
	}

	daf := records[0]
	if daf.ID != 271313 {
		t.Fatalf("records[0].ID = %d, expected 271313", daf.ID)
	}
	if daf.Brand != "DAF" || daf.Model != "XF" {
		t.Errorf("brand/model = %q/%q, expected DAF/XF", daf.Brand, daf.Model)
	}
	if daf.ModelExtended != "XF 480 FT" {
		t.Errorf("ModelExtended = %q, expected %q", daf.ModelExtended, "XF 480 FT")
	}
	if daf.Configuration != "4X2" {
		t.Errorf("Configuration = %q, expected %q", daf.Configuration, "4X2")
	}
	if daf.Cabin != "SPACE CAB" {
		t.Errorf("Cabin = %q, expected %q", daf.Cabin, "SPACE CAB")
	}
	if daf.Gearbox != "automatic" {
		t.Errorf("Gearbox = %q, expected %q", daf.Gearbox, "automatic")
	}
	if daf.Fuel != "diesel" {
		t.Errorf("Fuel = %q, expected %q", daf.Fuel, "diesel")
	}
	if daf.EuroNorm == nil || *daf.EuroNorm != 6 {
		t.Errorf("EuroNorm = %v, expected 6", daf.EuroNorm)
	}
	if daf.Power == nil || *daf.Power != 480 {
		t.Errorf("Power = %v, expected 480", daf.Power)
	}
	if daf.Price == nil || *daf.Price != 32500 {
		t.Errorf("Price = %v, expected 32500", daf.Price)
	}
	if daf.HasRetarder != inventory.FlagTrue {
		t.Errorf("HasRetarder = %v, expected true", daf.HasRetarder)
	}
	if daf.IsDamaged != inventory.FlagFalse {
		t.Errorf("IsDamaged = %v, expected false", daf.IsDamaged)
	}
	if daf.Suspension != "Luchtvering" {
		t.Errorf("Suspension = %q, expected %q", daf.Suspension, "Luchtvering")
	}
	if daf.RegisteredAt != "02/2019" {
		t.Errorf("RegisteredAt = %q, expected %q", daf.RegisteredAt, "02/2019")
	}
}

func TestLoadFixtureVocabulary(t *testing.T) {
	records, err := Load("testdata/inventory_sample.csv", logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	byID := make(map[int]inventory.Record)
	for _, r := range records {
		byID[r.ID] = r
	}

	tests := []struct {
		id      int
		gearbox string
		fuel    string
	}{
		{271313, "automatic", "diesel"},
		{271314, "automatic", "diesel"},
		{271315, "manual", "diesel"},
		{271316, "semi-automatic", "lng"},
	}

	for _, tt := range tests {
		r, ok := byID[tt.id]
		if !ok {
			t.Fatalf("vehicle %d missing from fixture", tt.id)
		}
		if r.Gearbox != tt.gearbox {
			t.Errorf("vehicle %d gearbox = %q, expected %q", tt.id, r.Gearbox, tt.gearbox)
		}
		if r.Fuel != tt.fuel {
			t.Errorf("vehicle %d fuel = %q, expected %q", tt.id, r.Fuel, tt.fuel)
		}
	}
}

func TestLoadFixtureMissingValues(t *testing.T) {
	records, err := Load("testdata/inventory_sample.csv", logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var scania inventory.Record
	for _, r := range records {
		if r.ID == 271314 {
			scania = r
		}
	}
	if scania.ID == 0 {
		t.Fatal("vehicle 271314 missing from fixture")
	}

	if scania.Mileage != nil {
		t.Errorf("Mileage = %v, expected nil for empty cell", scania.Mileage)
	}
	if scania.Price == nil || *scania.Price != 0 {
		t.Errorf("Price = %v, expected explicit 0 (price on request)", scania.Price)
	}
	if _, ok := scania.KnownPrice(); ok {
		t.Error("KnownPrice() ok for zero price, expected unknown")
	}
	if scania.IsDamaged != inventory.FlagUnknown {
		t.Errorf("IsDamaged = %v, expected unknown for empty cell", scania.IsDamaged)
	}
	if scania.HasRetarder != inventory.FlagUnknown {
		t.Errorf("HasRetarder = %v, expected unknown for empty cell", scania.HasRetarder)
	}
}

func TestParseDuplicateColumnKeepsFirst(t *testing.T) {
	csv := "vehicle_id;brand;brand\n" +
		"42;DAF;IGNORED\n"

	records, err := Parse(strings.NewReader(csv), logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, expected 1", len(records))
	}
	if records[0].Brand != "DAF" {
		t.Errorf("Brand = %q, expected first column value DAF", records[0].Brand)
	}
}

func TestParseSkipsRowsWithoutID(t *testing.T) {
	csv := "vehicle_id;brand\n" +
		";DAF\n" +
		"abc;SCANIA\n" +
		"7;VOLVO\n" +
		"0;MAN\n"

	records, err := Parse(strings.NewReader(csv), logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, expected 1", len(records))
	}
	if records[0].ID != 7 || records[0].Brand != "VOLVO" {
		t.Errorf("kept record = %d/%q, expected 7/VOLVO", records[0].ID, records[0].Brand)
	}
}

func TestParseToleratesShortRowsAndMissingColumns(t *testing.T) {
	csv := "vehicle_id;brand;power\n" +
		"1;DAF\n" +
		"2;SCANIA;450\n"

	records, err := Parse(strings.NewReader(csv), logger.NewSilentLogger())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, expected 2", len(records))
	}
	if records[0].Power != nil {
		t.Errorf("short row Power = %v, expected nil", records[0].Power)
	}
	if records[0].EuroNorm != nil || records[0].Gearbox != "" {
		t.Error("absent columns should leave zero values")
	}
	if records[0].IsDamaged != inventory.FlagUnknown {
		t.Errorf("absent flag column = %v, expected unknown", records[0].IsDamaged)
	}
	if records[1].Power == nil || *records[1].Power != 450 {
		t.Errorf("records[1].Power = %v, expected 450", records[1].Power)
	}
}

func TestParseRequiresVehicleIDColumn(t *testing.T) {
	csv := "brand;model\nDAF;XF\n"

	_, err := Parse(strings.NewReader(csv), logger.NewSilentLogger())
	if err == nil {
		t.Fatal("expected error for missing vehicle_id column, got nil")
	}
	if !strings.Contains(err.Error(), "vehicle_id") {
		t.Errorf("error = %v, expected mention of vehicle_id", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), logger.NewSilentLogger())
	if err == nil {
		t.Fatal("expected error for empty input, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does_not_exist.csv", logger.NewSilentLogger())
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
