package inventory

import "testing"

func TestRankPriceAscendingPushesZeroToEnd(t *testing.T) {
	records := []Record{
		{ID: 1, Price: fp(0)},
		{ID: 2, Price: fp(30000)},
		{ID: 3, Price: fp(0)},
		{ID: 4, Price: fp(10000)},
	}

	got := recordIDs(Rank(records, SortPriceAscending))
	expected := []int{4, 2, 1, 3}
	if !sameIDs(got, expected) {
		t.Errorf("price ascending order = %v, expected %v", got, expected)
	}

	// The two zero-price records must retain their input order.
	if got[2] != 1 || got[3] != 3 {
		t.Errorf("zero-price records reordered: %v", got)
	}
}

func TestRankDirections(t *testing.T) {
	records := []Record{
		{ID: 1, Price: fp(30000), Mileage: ip(500000), Power: ip(400)},
		{ID: 2, Price: fp(10000), Mileage: ip(100000), Power: ip(500)},
		{ID: 3, Price: fp(20000), Mileage: ip(300000), Power: ip(450)},
	}

	tests := []struct {
		key      SortKey
		expected []int
	}{
		{key: SortPriceAscending, expected: []int{2, 3, 1}},
		{key: SortPriceDescending, expected: []int{1, 3, 2}},
		{key: SortMileageAscending, expected: []int{2, 3, 1}},
		{key: SortPowerDescending, expected: []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := recordIDs(Rank(records, tt.key))
			if !sameIDs(got, tt.expected) {
				t.Errorf("Rank(%s) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestRankUnknownValuesSortLast(t *testing.T) {
	records := []Record{
		{ID: 1}, // all dimensions unknown
		{ID: 2, Price: fp(20000), Mileage: ip(200000), Power: ip(450)},
		{ID: 3, Price: fp(10000), Mileage: ip(100000), Power: ip(500)},
	}

	for _, key := range []SortKey{SortPriceAscending, SortPriceDescending, SortMileageAscending, SortPowerDescending} {
		t.Run(string(key), func(t *testing.T) {
			got := recordIDs(Rank(records, key))
			if got[2] != 1 {
				t.Errorf("Rank(%s) = %v, expected unknown record 1 last", key, got)
			}
		})
	}
}

func TestRankPriceDescendingTreatsZeroAsValue(t *testing.T) {
	records := []Record{
		{ID: 1, Price: fp(0)},
		{ID: 2, Price: fp(30000)},
		{ID: 3}, // price absent
	}

	got := recordIDs(Rank(records, SortPriceDescending))
	expected := []int{2, 1, 3}
	if !sameIDs(got, expected) {
		t.Errorf("price descending order = %v, expected %v", got, expected)
	}
}

func TestRankIsStable(t *testing.T) {
	records := []Record{
		{ID: 1, Price: fp(20000)},
		{ID: 2, Price: fp(20000)},
		{ID: 3, Price: fp(20000)},
		{ID: 4, Price: fp(10000)},
	}

	got := recordIDs(Rank(records, SortPriceAscending))
	expected := []int{4, 1, 2, 3}
	if !sameIDs(got, expected) {
		t.Errorf("stable sort order = %v, expected %v", got, expected)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	records := []Record{
		{ID: 1, Price: fp(30000)},
		{ID: 2, Price: fp(10000)},
	}

	Rank(records, SortPriceAscending)
	if records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("Rank modified its input slice: %v", recordIDs(records))
	}
}

func TestTruncate(t *testing.T) {
	records := []Record{{ID: 1}, {ID: 2}, {ID: 3}}

	if got := len(Truncate(records, 2)); got != 2 {
		t.Errorf("Truncate(3 records, 2) len = %d, expected 2", got)
	}
	if got := len(Truncate(records, 10)); got != 3 {
		t.Errorf("Truncate(3 records, 10) len = %d, expected 3", got)
	}
	if got := len(Truncate(records, 0)); got != 0 {
		t.Errorf("Truncate(3 records, 0) len = %d, expected 0", got)
	}
}
