// Package inventory implements the query engine over the tractor head
// inventory: structured filtering, deterministic ranking, point lookup
// and side-by-side comparison. The engine is a pure function of its
// inputs; it never retries and never relaxes a filter on its own, so
// an empty result is a success outcome the caller decides how to
// present.
package inventory

import "fmt"

// Engine answers queries against a RecordStore. All operations are
// synchronous in-memory scans; any number may run concurrently against
// the same store.
type Engine struct {
	store RecordStore
}

// NewEngine creates an engine over the given store.
func NewEngine(store RecordStore) *Engine {
	return &Engine{store: store}
}

// Store returns the engine's backing record store.
func (e *Engine) Store() RecordStore { return e.store }

// Search validates the spec, filters the inventory, ranks the matches
// and truncates to the spec's limit. Calling it twice with the same
// inputs yields identically ordered output.
func (e *Engine) Search(spec FilterSpec) ([]Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	matched := Filter(e.store.All(), spec)
	ranked := Rank(matched, spec.sortKeyOrDefault())
	return Truncate(ranked, spec.limitOrDefault()), nil
}

// Get resolves one identifier to its record. A miss returns an error
// wrapping ErrNotFound.
func (e *Engine) Get(id int) (Record, error) {
	r, ok := e.store.GetByID(id)
	if !ok {
		return Record{}, fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
	}
	return r, nil
}

// Compare resolves 2 to 5 identifiers to records in input order and
// derives a field-by-field table for display. A list outside the
// [2,5] bounds fails validation, and if any identifier is missing the
// whole operation fails reporting every missing id; no partial data
// is returned.
func (e *Engine) Compare(ids []int) (*Comparison, error) {
	if len(ids) < 2 {
		return nil, &ValidationError{
			Field:  "vehicle_ids",
			Reason: fmt.Sprintf("at least 2 vehicles are required, got %d", len(ids)),
		}
	}
	if len(ids) > 5 {
		return nil, &ValidationError{
			Field:  "vehicle_ids",
			Reason: fmt.Sprintf("at most 5 vehicles can be compared, got %d", len(ids)),
		}
	}

	records := make([]Record, 0, len(ids))
	var missing []int
	for _, id := range ids {
		r, ok := e.store.GetByID(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		records = append(records, r)
	}
	if len(missing) > 0 {
		return nil, &NotFoundError{IDs: missing}
	}

	return &Comparison{
		Records: records,
		Table:   compareTable(records),
	}, nil
}
