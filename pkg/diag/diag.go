// Package diag provides severity-aware validation diagnostics.
//
// Every diagnostic is created as a structured value (kind plus parameters).
// Both the human-readable message and the machine category tag derive from
// that structure, so downstream automation never has to re-parse rendered
// prose. Message wording is a public contract: external tooling matches
// substrings of these messages, so changing them is a breaking change.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Severity defines diagnostic impact level.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Kind identifies what a diagnostic is about, independent of its wording.
type Kind string

const (
	KindReadFailure         Kind = "read_failure"
	KindParseFailure        Kind = "parse_failure"
	KindDuplicateKeys       Kind = "duplicate_keys"
	KindEmptyDocument       Kind = "empty_document"
	KindMissingField        Kind = "missing_field"
	KindUnknownFields       Kind = "unknown_fields"
	KindDeprecatedField     Kind = "deprecated_field"
	KindInvalidDate         Kind = "invalid_date"
	KindInvalidURL          Kind = "invalid_url"
	KindCallUsContradiction Kind = "call_us_contradiction"
	KindUnparsablePrice     Kind = "unparsable_price"
	KindUnitMismatch        Kind = "unit_mismatch"
	KindZeroBasePrice       Kind = "zero_base_price"
	KindPercentMissing      Kind = "percent_missing"
	KindPercentMismatch     Kind = "percent_mismatch"
)

// Category is a stable machine-readable label for external automation.
type Category string

const (
	CategorySchemaError  Category = "schema-error"
	CategoryPricingError Category = "pricing-error"
)

// Tag renders the category in the wire form consumed by automation.
func (c Category) Tag() string {
	return "CATEGORY:" + string(c)
}

// Diagnostic is one validation finding for a single record.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Severity, d.Message)
}

// Category maps an error-severity diagnostic onto its category. Warnings
// carry no category: only errors feed external labeling.
func (d Diagnostic) Category() (Category, bool) {
	if d.Severity != SeverityError {
		return "", false
	}
	switch d.Kind {
	case KindReadFailure, KindParseFailure, KindDuplicateKeys, KindEmptyDocument,
		KindMissingField, KindInvalidDate, KindInvalidURL:
		return CategorySchemaError, true
	case KindPercentMissing, KindPercentMismatch:
		return CategoryPricingError, true
	}
	return "", false
}

// Categories returns the distinct category tags present in diags, sorted.
func Categories(diags []Diagnostic) []string {
	seen := map[string]bool{}
	for _, d := range diags {
		if cat, ok := d.Category(); ok {
			seen[cat.Tag()] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NewReadFailure reports a record file that could not be read at all.
func NewReadFailure(err error) Diagnostic {
	return Diagnostic{
		Kind:     KindReadFailure,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Failed to read file: %v", err),
	}
}

// NewParseFailure reports a syntactically invalid record.
func NewParseFailure(err error) Diagnostic {
	return Diagnostic{
		Kind:     KindParseFailure,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Failed to parse YAML: %v", err),
	}
}

// NewDuplicateKeys reports repeated top-level field names. Keys must already
// be sorted and de-duplicated by the caller.
func NewDuplicateKeys(keys []string) Diagnostic {
	return Diagnostic{
		Kind:     KindDuplicateKeys,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Duplicate key(s) in YAML: %s.", strings.Join(keys, ", ")),
	}
}

// NewEmptyDocument reports a record that parses to nothing.
func NewEmptyDocument() Diagnostic {
	return Diagnostic{
		Kind:     KindEmptyDocument,
		Severity: SeverityError,
		Message:  "Empty YAML file.",
	}
}

// NewMissingField reports an absent or empty required field.
func NewMissingField(field string) Diagnostic {
	return Diagnostic{
		Kind:     KindMissingField,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Missing required field: '%s'.", field),
	}
}

// NewUnknownFields reports unrecognized field names. Fields must already be
// sorted by the caller.
func NewUnknownFields(fields []string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnknownFields,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Unknown field(s): %s. Check for typos.", strings.Join(fields, ", ")),
	}
}

// NewDeprecatedField carries the field's pre-registered migration message.
func NewDeprecatedField(message string) Diagnostic {
	return Diagnostic{
		Kind:     KindDeprecatedField,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// NewInvalidDate reports a non ISO-date updated_at value.
func NewInvalidDate(field string, value any) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidDate,
		Severity: SeverityError,
		Message:  fmt.Sprintf("'%s' value '%v' is not a valid YYYY-MM-DD date.", field, value),
	}
}

// NewInvalidURL reports a value that does not look like an http(s) URL.
func NewInvalidURL(field string, value any) Diagnostic {
	msg := fmt.Sprintf("'%s' does not look like a valid URL: '%v'.", field, value)
	if field == "pricing_source" {
		msg = fmt.Sprintf("'%s' entry does not look like a valid URL: '%v'.", field, value)
	}
	return Diagnostic{
		Kind:     KindInvalidURL,
		Severity: SeverityError,
		Message:  msg,
	}
}

// NewCallUsContradiction flags a numeric percentage on contact-sales pricing.
func NewCallUsContradiction(ssoPricing, provided string) Diagnostic {
	return Diagnostic{
		Kind:     KindCallUsContradiction,
		Severity: SeverityWarning,
		Message: fmt.Sprintf("SSO pricing looks like 'Contact Us' ('%s'), but a numeric percentage (%s%%) was provided.",
			ssoPricing, provided),
	}
}

// NewUnparsablePrice asks for a human when the extractor gives up.
func NewUnparsablePrice(basePricing, ssoPricing string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnparsablePrice,
		Severity: SeverityWarning,
		Message: fmt.Sprintf("Could not extract numeric price from base ('%s') and/or sso ('%s'). Manual review recommended.",
			basePricing, ssoPricing),
	}
}

// NewUnitMismatch flags prices declared in different units.
func NewUnitMismatch(baseUnit, ssoUnit string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnitMismatch,
		Severity: SeverityWarning,
		Message: fmt.Sprintf("Price units differ: base is '%s', sso is '%s'. Confirm percent_increase compares like for like.",
			baseUnit, ssoUnit),
	}
}

// NewZeroBasePrice reports an incomputable percentage over a $0 base.
func NewZeroBasePrice() Diagnostic {
	return Diagnostic{
		Kind:     KindZeroBasePrice,
		Severity: SeverityWarning,
		Message:  "Base pricing is $0. Cannot calculate percentage increase.",
	}
}

// NewPercentMissing reports an omitted but computable percent_increase.
// The finding is an error when the price units match; with differing units
// the derived value may not be meaningful, so it is downgraded to a warning.
func NewPercentMissing(expected string, unitsMatch bool) Diagnostic {
	severity := SeverityError
	if !unitsMatch {
		severity = SeverityWarning
	}
	return Diagnostic{
		Kind:     KindPercentMissing,
		Severity: severity,
		Message: fmt.Sprintf("percent_increase is missing but computable. Expected: %s. Add `percent_increase: %s`.",
			expected, expected),
	}
}

// NewPercentMismatch reports a declared percentage outside tolerance of the
// calculated one. Same unit-mismatch downgrade as NewPercentMissing.
func NewPercentMismatch(calculated, provided, baseVal, ssoVal string, unitsMatch bool) Diagnostic {
	severity := SeverityError
	if !unitsMatch {
		severity = SeverityWarning
	}
	return Diagnostic{
		Kind:     KindPercentMismatch,
		Severity: severity,
		Message: fmt.Sprintf("Percentage mismatch. Calculated: %s%%, Provided: %s%%. Prices: base=$%s, sso=$%s.",
			calculated, provided, baseVal, ssoVal),
	}
}
