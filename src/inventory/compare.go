package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparison is the result of resolving a comparison request: the
// records in input order plus a display projection. The table is
// derived purely from the records and plays no part in matching.
type Comparison struct {
	Records []Record
	Table   []CompareRow
}

// CompareRow is one attribute rendered across all compared vehicles,
// in the same order as Comparison.Records.
type CompareRow struct {
	Label  string
	Values []string
}

// compareRows lists the projected attributes in display order.
var compareRows = []struct {
	label string
	value func(Record) string
}{
	{"Vehicle", func(r Record) string { return r.DisplayName() }},
	{"Price", fmtPrice},
	{"Power", func(r Record) string { return fmtUnit(r.Power, " HP") }},
	{"Mileage", func(r Record) string { return fmtKilometers(r.Mileage) }},
	{"Euro norm", func(r Record) string { return fmtInt(r.EuroNorm) }},
	{"Gearbox", func(r Record) string { return fmtString(r.Gearbox) }},
	{"Configuration", func(r Record) string { return fmtString(r.Configuration) }},
	{"Cabin", func(r Record) string { return fmtString(r.Cabin) }},
	{"Fuel", func(r Record) string { return fmtString(r.Fuel) }},
	{"New", func(r Record) string { return fmtFlag(r.IsNew) }},
	{"Retarder", func(r Record) string { return fmtFlag(r.HasRetarder) }},
	{"Air conditioning", func(r Record) string { return fmtFlag(r.HasAirConditioning) }},
	{"Beds", func(r Record) string { return fmtInt(r.BedCount) }},
	{"Suspension", func(r Record) string { return fmtString(r.Suspension) }},
}

func compareTable(records []Record) []CompareRow {
	table := make([]CompareRow, 0, len(compareRows))
	for _, row := range compareRows {
		values := make([]string, len(records))
		for i, r := range records {
			values[i] = row.value(r)
		}
		table = append(table, CompareRow{Label: row.label, Values: values})
	}
	return table
}

// Text renders the comparison as an aligned plain-text table.
func (c *Comparison) Text() string {
	var b strings.Builder
	b.WriteString("COMPARISON\n")
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")
	for _, row := range c.Table {
		b.WriteString(fmt.Sprintf("%-20s", row.Label))
		for _, v := range row.Values {
			b.WriteString(fmt.Sprintf(" | %-25s", v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func fmtPrice(r Record) string {
	price, known := r.KnownPrice()
	if !known {
		return "On request"
	}
	return "€" + groupDigits(int64(price+0.5))
}

func fmtKilometers(p *int) string {
	if p == nil {
		return "N/A"
	}
	return groupDigits(int64(*p)) + " km"
}

func fmtUnit(p *int, unit string) string {
	if p == nil {
		return "N/A"
	}
	return strconv.Itoa(*p) + unit
}

func fmtInt(p *int) string {
	if p == nil {
		return "N/A"
	}
	return strconv.Itoa(*p)
}

func fmtString(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func fmtFlag(f Flag) string {
	if f.True() {
		return "Yes"
	}
	return "No"
}

// groupDigits renders n with thousands separators, e.g. 132500 as
// "132,500".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteString(",")
		}
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
