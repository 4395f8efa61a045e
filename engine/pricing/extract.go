// Package pricing extracts magnitudes and unit suffixes from freeform price
// text and reconciles declared percentage increases against them.
package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// First run of digits with an optional single decimal point.
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// One or more currency symbols at the very start of the text.
	currencyPrefixPattern = regexp.MustCompile(`^[$€£¥]+`)
	// Footnote reference markup like "[^price-note]".
	footnoteRefPattern = regexp.MustCompile(`\[\^[^\]]+\]`)
)

// ExtractPrice returns the first monetary amount in text: the first
// contiguous run of digits with an optional single decimal point, after
// removing thousands-separating commas. Currency symbols and unit text are
// ignored. The second return is false when text holds no digits; that is a
// precondition for callers, not an error.
func ExtractPrice(text string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(text, ",", "")
	match := numberPattern.FindString(clean)
	if match == "" {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

// ExtractUnit returns the unit suffix of a price: commas removed, a leading
// run of currency symbols stripped, the first numeric run removed, then
// trimmed and lower-cased. A bare numeric price yields "".
//
// Only a currency symbol that precedes the magnitude is stripped; a
// trailing symbol ("4.99€ / device") stays part of the unit. That asymmetry
// is intentional: two prices written with the marker on opposite sides do
// not compare like for like.
func ExtractUnit(text string) string {
	clean := strings.ReplaceAll(text, ",", "")
	clean = currencyPrefixPattern.ReplaceAllString(clean, "")
	if loc := numberPattern.FindStringIndex(clean); loc != nil {
		clean = clean[:loc[0]] + clean[loc[1]:]
	}
	return strings.ToLower(strings.TrimSpace(clean))
}

// StripFootnoteRefs removes legacy footnote-reference markup ("[^id]") so
// legacy-format records are not penalized twice: once by the deprecation
// warning and again by a spurious pricing mismatch.
func StripFootnoteRefs(text string) string {
	return footnoteRefPattern.ReplaceAllString(text, "")
}

// IsCallUs reports whether pricing text implies contact-sales pricing.
// Case-insensitive substring match on the configured keywords. This is a
// heuristic, not a guarantee: callers treat it as informational.
func IsCallUs(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ParsePercent interprets a percent_increase value. Numeric types are
// accepted directly; strings lose a trailing '%' and surrounding whitespace
// before parsing. Unparsable values ("N/A", "???") count as not provided,
// never as an error.
func ParsePercent(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case float64:
		return decimal.NewFromFloat(val), true
	case string:
		clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		parsed, err := decimal.NewFromString(clean)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return parsed, true
	}
	return decimal.Decimal{}, false
}
