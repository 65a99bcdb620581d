package inventory

import "sort"

// Rank returns a copy of records ordered by the given sort key.
// Records with an unknown value on the active dimension always sort to
// the end regardless of direction, and for price ascending a price of
// exactly zero counts as unknown so "on request" vehicles never rank
// as the cheapest. The sort is stable: records tied on the key keep
// their relative input order.
func Rank(records []Record, key SortKey) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	value := sortValue(key)
	ascending := key != SortPriceDescending && key != SortPowerDescending

	sort.SliceStable(out, func(i, j int) bool {
		vi, iKnown := value(out[i])
		vj, jKnown := value(out[j])
		if iKnown != jKnown {
			// The record with a known value comes first.
			return iKnown
		}
		if !iKnown {
			return false
		}
		if ascending {
			return vi < vj
		}
		return vi > vj
	})

	return out
}

// Truncate caps the ordered result to limit entries. Truncation always
// happens after ordering so a small limit still returns the top of the
// full qualifying set.
func Truncate(records []Record, limit int) []Record {
	if limit < 0 {
		limit = 0
	}
	if len(records) <= limit {
		return records
	}
	return records[:limit]
}

// sortValue maps a sort key to an extractor returning the dimension
// value and whether it is known.
func sortValue(key SortKey) func(Record) (float64, bool) {
	switch key {
	case SortPriceDescending:
		// Zero is an ordinary lowest price here; only absence is
		// unknown. The zero-as-unknown rule applies to ascending only.
		return func(r Record) (float64, bool) {
			if r.Price == nil {
				return 0, false
			}
			return *r.Price, true
		}
	case SortMileageAscending:
		return func(r Record) (float64, bool) { return floatOf(r.Mileage) }
	case SortPowerDescending:
		return func(r Record) (float64, bool) { return floatOf(r.Power) }
	default: // SortPriceAscending
		return func(r Record) (float64, bool) { return r.KnownPrice() }
	}
}

func floatOf(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}
