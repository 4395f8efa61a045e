// Package record parses vendor pricing records and enforces their schema.
package record

import (
	"fmt"
	"regexp"
	"time"
)

// Field names recognized by the current schema version.
const (
	FieldName              = "name"
	FieldBasePricing       = "base_pricing"
	FieldSSOPricing        = "sso_pricing"
	FieldVendorURL         = "vendor_url"
	FieldPricingSource     = "pricing_source"
	FieldUpdatedAt         = "updated_at"
	FieldPercentIncrease   = "percent_increase"
	FieldVendorNote        = "vendor_note"
	FieldPricingSourceInfo = "pricing_source_info"

	// Legacy fields, tolerated but deprecated.
	FieldFootnotes   = "footnotes"
	FieldPricingNote = "pricing_note"
)

// Record is one vendor's pricing submission: a mapping of named fields.
// Values are whatever YAML resolved them to (string, number, list, time).
type Record map[string]any

// Get returns the value of a field, or nil when absent.
func (r Record) Get(field string) any {
	return r[field]
}

// Has reports whether the field is present, regardless of value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// StringValue coerces a scalar field to its string form. The second return
// is false when the field is absent.
func (r Record) StringValue(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	if s, isStr := v.(string); isStr {
		return s, true
	}
	return fmt.Sprint(v), true
}

var urlPattern = regexp.MustCompile(`^https?://`)

// IsValidURL reports whether v is a string with an http or https prefix.
func IsValidURL(v any) bool {
	s, ok := v.(string)
	return ok && urlPattern.MatchString(s)
}

// IsEmptyValue reports whether a field value counts as "not provided":
// nil, empty string, empty list, numeric zero or false.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	case time.Time:
		return val.IsZero()
	}
	return false
}
