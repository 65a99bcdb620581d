package contracts

import "truckfinder-agent/src/inventory"

// VehicleFromRecord maps a normalized inventory record onto the wire
// representation. Unknown flags become absent fields.
func VehicleFromRecord(r inventory.Record) Vehicle {
	return Vehicle{
		ID:            r.ID,
		Brand:         r.Brand,
		Model:         r.Model,
		ModelExtended: r.ModelExtended,
		Configuration: r.Configuration,
		Cabin:         r.Cabin,
		Gearbox:       r.Gearbox,
		Fuel:          r.Fuel,
		Suspension:    r.Suspension,
		DriverSide:    r.DriverSide,

		EuroNorm:    r.EuroNorm,
		Power:       r.Power,
		Mileage:     r.Mileage,
		Price:       r.Price,
		BedCount:    r.BedCount,
		TankCount:   r.TankCount,
		Wheelbase:   r.Wheelbase,
		Length:      r.Length,
		Width:       r.Width,
		Height:      r.Height,
		TotalWeight: r.TotalWeight,
		NetWeight:   r.NetWeight,

		RegisteredAt: r.RegisteredAt,
		ProductionAt: r.ProductionAt,

		IsNew:              flagPtr(r.IsNew),
		IsDamaged:          flagPtr(r.IsDamaged),
		HasRetarder:        flagPtr(r.HasRetarder),
		HasAirConditioning: flagPtr(r.HasAirConditioning),
		HasHydraulics:      flagPtr(r.HasHydraulics),
		HasCrane:           flagPtr(r.HasCrane),
		Mega:               flagPtr(r.Mega),
	}
}

// VehiclesFromRecords maps a result slice onto wire vehicles. Always
// returns a non-nil slice so empty results serialize as [].
func VehiclesFromRecords(records []inventory.Record) []Vehicle {
	vehicles := make([]Vehicle, len(records))
	for i, r := range records {
		vehicles[i] = VehicleFromRecord(r)
	}
	return vehicles
}

// CardFromVehicle trims a wire vehicle down to the chat card fields.
func CardFromVehicle(v Vehicle) VehicleCard {
	return VehicleCard{
		ID:                 v.ID,
		Brand:              v.Brand,
		ModelExtended:      v.ModelExtended,
		Configuration:      v.Configuration,
		Cabin:              v.Cabin,
		EuroNorm:           v.EuroNorm,
		Gearbox:            v.Gearbox,
		Fuel:               v.Fuel,
		Power:              v.Power,
		Mileage:            v.Mileage,
		Price:              v.Price,
		BedCount:           v.BedCount,
		IsNew:              v.IsNew,
		HasRetarder:        v.HasRetarder,
		HasAirConditioning: v.HasAirConditioning,
	}
}

// MetaFromFacets maps computed inventory facets onto the /meta.json
// payload.
func MetaFromFacets(f inventory.Facets) Meta {
	return Meta{
		Total:          f.Total,
		Brands:         facetCounts(f.Brands),
		Configurations: facetCounts(f.Configurations),
		EuroNorms:      intsOrEmpty(f.EuroNorms),
		Gearboxes:      facetCounts(f.Gearboxes),
		Fuels:          facetCounts(f.Fuels),
		Conditions: Conditions{
			New:  f.ConditionNew,
			Used: f.ConditionUsed,
		},
		PriceRange: FloatRange{Min: f.PriceRange.Min, Max: f.PriceRange.Max},
		PowerRange: IntRange{Min: f.PowerRange.Min, Max: f.PowerRange.Max},
	}
}

func facetCounts(counts []inventory.FacetCount) []FacetCount {
	out := make([]FacetCount, len(counts))
	for i, c := range counts {
		out[i] = FacetCount{Value: c.Value, Count: c.Count}
	}
	return out
}

func intsOrEmpty(vals []int) []int {
	if vals == nil {
		return []int{}
	}
	return vals
}

func flagPtr(f inventory.Flag) *bool {
	if !f.Known() {
		return nil
	}
	v := f.True()
	return &v
}
