package record

import (
	"sort"
	"time"

	"ssolint/pkg/diag"
)

// Schema is the immutable field configuration a validator runs against.
// The recognized field set is closed and versioned: adding a field means
// registering it here, and a legacy field additionally needs its own
// migration message in Deprecated.
type Schema struct {
	// Required fields, checked in order.
	Required []string
	// Known holds every recognized field name, current and legacy.
	Known map[string]bool
	// Deprecated maps a legacy field to its migration message. A field
	// listed here gets that message instead of the unknown-field warning.
	Deprecated map[string]string
	// CallUsKeywords drive the contact-sales pricing heuristic.
	CallUsKeywords []string
}

// DefaultSchema returns the current vendor record schema.
func DefaultSchema() Schema {
	return Schema{
		Required: []string{
			FieldName,
			FieldBasePricing,
			FieldSSOPricing,
			FieldVendorURL,
			FieldPricingSource,
			FieldUpdatedAt,
		},
		Known: map[string]bool{
			FieldName:              true,
			FieldBasePricing:       true,
			FieldSSOPricing:        true,
			FieldVendorURL:         true,
			FieldPricingSource:     true,
			FieldUpdatedAt:         true,
			FieldPercentIncrease:   true,
			FieldVendorNote:        true,
			FieldPricingSourceInfo: true,
			FieldFootnotes:         true,
			FieldPricingNote:       true,
		},
		Deprecated: map[string]string{
			FieldFootnotes:   "Deprecated field 'footnotes': move the note text into 'vendor_note' (e.g. vendor_note: Requires the enterprise tier).",
			FieldPricingNote: "Deprecated field 'pricing_note': use 'pricing_source_info' instead (the value 'Quote' becomes 'Pricing comes from a quote').",
		},
		CallUsKeywords: []string{"call", "custom", "quote", "contact"},
	}
}

// Validator applies schema rules to a parsed record.
type Validator struct {
	schema Schema
}

// NewValidator creates a validator for the given schema.
func NewValidator(schema Schema) *Validator {
	return &Validator{schema: schema}
}

// Validate runs every schema rule against rec and returns the accumulated
// diagnostics in deterministic order. It never stops early: all rules apply
// on every call so output is reproducible.
func (v *Validator) Validate(rec Record) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, field := range v.schema.Required {
		if IsEmptyValue(rec.Get(field)) {
			out = append(out, diag.NewMissingField(field))
		}
	}

	var unknown []string
	var deprecated []string
	for field := range rec {
		if _, legacy := v.schema.Deprecated[field]; legacy {
			deprecated = append(deprecated, field)
			continue
		}
		if !v.schema.Known[field] {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		out = append(out, diag.NewUnknownFields(unknown))
	}
	sort.Strings(deprecated)
	for _, field := range deprecated {
		out = append(out, diag.NewDeprecatedField(v.schema.Deprecated[field]))
	}

	if updatedAt := rec.Get(FieldUpdatedAt); !IsEmptyValue(updatedAt) {
		if !isValidDate(updatedAt) {
			out = append(out, diag.NewInvalidDate(FieldUpdatedAt, renderDate(updatedAt)))
		}
	}

	if vendorURL := rec.Get(FieldVendorURL); !IsEmptyValue(vendorURL) {
		if !IsValidURL(vendorURL) {
			out = append(out, diag.NewInvalidURL(FieldVendorURL, vendorURL))
		}
	}

	// pricing_source may be a single string or a list; every entry must be
	// an http(s) URL and each offender is its own hard error.
	if source := rec.Get(FieldPricingSource); !IsEmptyValue(source) {
		entries, ok := source.([]any)
		if !ok {
			entries = []any{source}
		}
		for _, entry := range entries {
			if !IsValidURL(entry) {
				out = append(out, diag.NewInvalidURL(FieldPricingSource, entry))
			}
		}
	}

	return out
}

// isValidDate accepts either a yaml-resolved time.Time or a strict
// YYYY-MM-DD string.
func isValidDate(v any) bool {
	switch val := v.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse("2006-01-02", val)
		return err == nil
	default:
		return false
	}
}

// renderDate keeps the original value in the diagnostic, formatting
// yaml-resolved times back to their date form.
func renderDate(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
