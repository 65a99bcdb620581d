// Package normalize converts raw inventory text into the canonical
// forms the query engine stores and matches on.
//
// The source catalogue comes out of a Dutch dealer backend: category
// labels arrive in mixed case with stray whitespace, gearbox values in
// Dutch, numbers with unit suffixes and either comma or dot decimal
// separators, and boolean columns as free-text strings. Everything is
// normalized once at ingestion so the engine never re-parses raw text.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"truckfinder-agent/src/inventory"
)

// GearboxMap translates the Dutch source labels to the controlled
// vocabulary. Values already in English pass through unchanged apart
// from lower-casing.
var GearboxMap = map[string]string{
	"AUTOMAAT":       "automatic",
	"HANDGESCHAKELD": "manual",
	"HALFAUTOMAAT":   "semi-automatic",
}

// Shared regex patterns - compiled once at package init.
var (
	// whitespacePattern matches runs of whitespace for collapsing.
	whitespacePattern = regexp.MustCompile(`\s+`)

	// numberPrefixPattern captures the numeric head of a value,
	// leaving unit suffixes like "pk" or "km" behind.
	numberPrefixPattern = regexp.MustCompile(`^[-+]?[0-9][0-9.,]*`)

	// yearPattern matches a plausible four-digit year.
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Upper trims, collapses inner whitespace and upper-cases a value.
// Used for brand, model, configuration, cabin and the other
// categorical columns.
func Upper(raw string) string {
	return strings.ToUpper(collapse(raw))
}

// Lower trims, collapses inner whitespace and lower-cases a value.
// Used for fuel and for gearbox labels outside the vocabulary.
func Lower(raw string) string {
	return strings.ToLower(collapse(raw))
}

// Gearbox translates a raw gearbox label into the controlled
// vocabulary automatic / manual / semi-automatic. Labels the
// vocabulary does not know are kept, lower-cased.
func Gearbox(raw string) string {
	s := collapse(raw)
	if s == "" {
		return ""
	}
	if v, ok := GearboxMap[strings.ToUpper(s)]; ok {
		return v
	}
	return strings.ToLower(s)
}

// ParseBool reads the boolean spellings found in the source catalogue.
// Empty input stays unknown; "true", "1" and "yes" are true; every
// other value is false.
func ParseBool(raw string) inventory.Flag {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return inventory.FlagUnknown
	}
	switch s {
	case "true", "1", "yes":
		return inventory.FlagTrue
	}
	return inventory.FlagFalse
}

// ParseFloat reads a possibly unit-suffixed, possibly comma-decimal
// number. Returns nil when no number can be extracted.
//
//	"32500"     → 32500
//	"12,5"      → 12.5
//	"1.250.000" → 1250000
//	"450 pk"    → 450
func ParseFloat(raw string) *float64 {
	s := numberPrefixPattern.FindString(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(normalizeSeparators(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInt reads an integer the way ParseFloat reads a float,
// truncating any fractional part. "450.0" parses as 450.
func ParseInt(raw string) *int {
	f := ParseFloat(raw)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// ParseYear extracts a four-digit year from a date-ish value such as
// "02/2019" or "2019-05-21". Returns nil when none is present.
func ParseYear(raw string) *int {
	s := yearPattern.FindString(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// collapse trims and squeezes inner whitespace runs to single spaces.
func collapse(raw string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(raw, " "))
}

// normalizeSeparators rewrites European digit grouping into a form
// strconv accepts. A lone comma is a decimal separator; when a comma
// is present, dots group thousands; repeated dots or repeated commas
// always group thousands.
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case commas == 0 && dots <= 1:
		return s
	case commas == 0:
		// 1.250.000
		return strings.ReplaceAll(s, ".", "")
	case commas == 1:
		// 12,5 or 1.250.000,50
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	default:
		// 1,250,000
		s = strings.ReplaceAll(s, ",", "")
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
		return s
	}
}
