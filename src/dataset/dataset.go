// Package dataset loads the semicolon-delimited dealer inventory
// export into normalized records.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/logger"
	"truckfinder-agent/src/normalize"
)

// Load reads and normalizes the inventory CSV at path.
func Load(path string, log logger.Logger) ([]inventory.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory csv: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, log)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	log.Info("[Dataset] Loaded %d vehicles from %s", len(records), path)
	return records, nil
}

// Parse reads a semicolon-delimited export. The column set is taken
// from the header row; rows without a usable vehicle id are skipped.
func Parse(r io.Reader, log logger.Logger) ([]inventory.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("inventory csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := columnIndex(header)
	if _, ok := cols["vehicle_id"]; !ok {
		return nil, fmt.Errorf("inventory csv has no vehicle_id column")
	}

	var records []inventory.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}

		id := normalize.ParseInt(field(row, cols, "vehicle_id"))
		if id == nil || *id <= 0 {
			log.Debug("[Dataset] Skipping row %d: no usable vehicle_id (%q)",
				line, field(row, cols, "vehicle_id"))
			continue
		}

		records = append(records, inventory.Record{
			ID: *id,

			Brand:         normalize.Upper(field(row, cols, "brand")),
			Model:         normalize.Upper(field(row, cols, "model")),
			ModelExtended: field(row, cols, "model_extended"),
			Configuration: normalize.Upper(field(row, cols, "configuration")),
			Cabin:         normalize.Upper(field(row, cols, "cabin")),
			Suspension:    field(row, cols, "suspension"),
			DriverSide:    field(row, cols, "driver_side"),

			Gearbox: normalize.Gearbox(field(row, cols, "gearbox")),
			Fuel:    normalize.Lower(field(row, cols, "fuel")),

			EuroNorm:    normalize.ParseInt(field(row, cols, "euro")),
			Power:       normalize.ParseInt(field(row, cols, "power")),
			Mileage:     normalize.ParseInt(field(row, cols, "mileage")),
			Price:       normalize.ParseFloat(field(row, cols, "internet_price")),
			BedCount:    normalize.ParseInt(field(row, cols, "bed_amount")),
			TankCount:   normalize.ParseInt(field(row, cols, "tank_amount")),
			Wheelbase:   normalize.ParseInt(field(row, cols, "wheelbase")),
			Length:      normalize.ParseInt(field(row, cols, "length")),
			Width:       normalize.ParseInt(field(row, cols, "width")),
			Height:      normalize.ParseInt(field(row, cols, "height")),
			TotalWeight: normalize.ParseInt(field(row, cols, "total_weight")),
			NetWeight:   normalize.ParseInt(field(row, cols, "net_weight")),

			RegisteredAt: field(row, cols, "registered_at"),
			ProductionAt: field(row, cols, "production_at"),

			IsNew:              normalize.ParseBool(field(row, cols, "is_new")),
			IsDamaged:          normalize.ParseBool(field(row, cols, "is_damaged")),
			HasRetarder:        normalize.ParseBool(field(row, cols, "retarder")),
			HasAirConditioning: normalize.ParseBool(field(row, cols, "has_airco")),
			HasHydraulics:      normalize.ParseBool(field(row, cols, "has_hydraulics")),
			HasCrane:           normalize.ParseBool(field(row, cols, "has_crane")),
			Mega:               normalize.ParseBool(field(row, cols, "mega")),
		})
	}

	return records, nil
}

// columnIndex maps column names to their first position in the header.
// The export repeats some columns (two cabin, two brand); the first
// occurrence wins, matching how downstream consumers read it.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}
	return cols
}

// field returns the trimmed cell for a named column, or "" when the
// column is absent or the row is short.
func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
