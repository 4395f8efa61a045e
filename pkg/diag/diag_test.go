package diag

import (
	"errors"
	"testing"
)

var errFake = errors.New("open missing.yaml: no such file or directory")

func TestCategoryMapping(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want Category
		ok   bool
	}{
		{"read failure", NewReadFailure(errFake), CategorySchemaError, true},
		{"parse failure", NewEmptyDocument(), CategorySchemaError, true},
		{"duplicate keys", NewDuplicateKeys([]string{"name"}), CategorySchemaError, true},
		{"missing field", NewMissingField("name"), CategorySchemaError, true},
		{"invalid date", NewInvalidDate("updated_at", "nope"), CategorySchemaError, true},
		{"invalid url", NewInvalidURL("vendor_url", "nope"), CategorySchemaError, true},
		{"percent missing, units match", NewPercentMissing("100%", true), CategoryPricingError, true},
		{"percent mismatch, units match", NewPercentMismatch("100.0", "50", "10", "20", true), CategoryPricingError, true},
		// Warnings never carry a category, including downgraded findings.
		{"percent missing, units differ", NewPercentMissing("100%", false), "", false},
		{"percent mismatch, units differ", NewPercentMismatch("100.0", "50", "10", "20", false), "", false},
		{"unknown fields", NewUnknownFields([]string{"x"}), "", false},
		{"unit mismatch", NewUnitMismatch("per u/m", "per month"), "", false},
		{"zero base", NewZeroBasePrice(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.diag.Category()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Category() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCategoriesSortedAndDeduplicated(t *testing.T) {
	diags := []Diagnostic{
		NewPercentMissing("100%", true),
		NewMissingField("name"),
		NewMissingField("vendor_url"),
		NewUnknownFields([]string{"x"}),
	}

	got := Categories(diags)
	want := []string{"CATEGORY:pricing-error", "CATEGORY:schema-error"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnitMismatchDowngrade(t *testing.T) {
	if d := NewPercentMissing("100%", true); d.Severity != SeverityError {
		t.Errorf("units match: severity = %s, want error", d.Severity)
	}
	if d := NewPercentMissing("100%", false); d.Severity != SeverityWarning {
		t.Errorf("units differ: severity = %s, want warning", d.Severity)
	}
}

func TestMessageWording(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{NewMissingField("name"), "Missing required field: 'name'."},
		{NewDuplicateKeys([]string{"a", "b"}), "Duplicate key(s) in YAML: a, b."},
		{NewUnknownFields([]string{"nmae"}), "Unknown field(s): nmae. Check for typos."},
		{NewZeroBasePrice(), "Base pricing is $0. Cannot calculate percentage increase."},
		{NewReadFailure(errFake), "Failed to read file: open missing.yaml: no such file or directory"},
	}

	for _, tt := range tests {
		if tt.diag.Message != tt.want {
			t.Errorf("Message = %q, want %q", tt.diag.Message, tt.want)
		}
	}
}
