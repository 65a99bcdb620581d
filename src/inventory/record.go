package inventory

// Flag is a three-valued boolean attribute. Flag columns are frequently
// absent in the source data, so the zero value is FlagUnknown and
// unknown must never be read as false by filter logic.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagTrue
	FlagFalse
)

// True reports whether the flag is explicitly set.
func (f Flag) True() bool { return f == FlagTrue }

// False reports whether the flag is explicitly cleared.
func (f Flag) False() bool { return f == FlagFalse }

// Known reports whether the flag carries an explicit value.
func (f Flag) Known() bool { return f != FlagUnknown }

// String returns "true", "false" or "unknown".
func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unknown"
	}
}

// FlagOf converts a known boolean into a Flag.
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// Record is one tractor head in the inventory. Every attribute except
// ID is optional: a nil pointer, empty string or FlagUnknown means the
// source did not provide the value, which is distinct from zero or
// false. Records arrive fully normalized from ingestion (upper-cased
// categoricals, lower-cased and vocabulary-translated gearbox/fuel,
// parsed numerics and flags); the engine never re-parses raw text.
type Record struct {
	ID int

	// Categoricals, upper-cased at ingestion.
	Brand         string
	Model         string
	ModelExtended string
	Configuration string
	Cabin         string
	Suspension    string
	DriverSide    string

	// Categoricals, lower-cased at ingestion. Gearbox values are
	// translated to the controlled vocabulary
	// automatic / manual / semi-automatic.
	Gearbox string
	Fuel    string

	// Numeric measures. Price of nil or 0 means "price on request",
	// never free.
	EuroNorm    *int
	Power       *int // HP
	Mileage     *int // km
	Price       *float64
	BedCount    *int
	TankCount   *int
	Wheelbase   *int // mm
	Length      *int // mm
	Width       *int // mm
	Height      *int // mm
	TotalWeight *int // kg
	NetWeight   *int // kg

	// Registration and production dates as they appear in the source,
	// typically "02/2019".
	RegisteredAt string
	ProductionAt string

	// Tri-state flags.
	IsNew              Flag
	IsDamaged          Flag
	HasRetarder        Flag
	HasAirConditioning Flag
	HasHydraulics      Flag
	HasCrane           Flag
	Mega               Flag
}

// DisplayName is the headline label for a record, preferring the
// extended model designation when present.
func (r Record) DisplayName() string {
	model := r.ModelExtended
	if model == "" {
		model = r.Model
	}
	if r.Brand == "" {
		return model
	}
	if model == "" {
		return r.Brand
	}
	return r.Brand + " " + model
}

// KnownPrice returns the price and whether it is usable for filtering
// and ordering. Zero and absent both count as unknown.
func (r Record) KnownPrice() (float64, bool) {
	if r.Price == nil || *r.Price <= 0 {
		return 0, false
	}
	return *r.Price, true
}
