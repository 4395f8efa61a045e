package pricing

import "testing"

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"$23.99", "23.99", true},
		{"$10 per u/m", "10", true},
		{"$2,500", "2500", true},
		{"$2500", "2500", true},
		{"$2,500[^price-note]", "2500", true},
		{"€10 per u/m", "10", true},
		{"4.99€ / device", "4.99", true},
		{"10% premium", "10", true},
		{"???", "", false},
		{"Call Us!", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, found := ExtractPrice(tt.input)
			if found != tt.found {
				t.Fatalf("ExtractPrice(%q) found = %v, want %v", tt.input, found, tt.found)
			}
			if found && got.String() != tt.want {
				t.Errorf("ExtractPrice(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractUnit(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$10 per u/m", "per u/m"},
		{"$2,500", ""},
		{"$23.99", ""},
		{"€10 per u/m", "per u/m"},
		{"$€10 per seat", "per seat"},
		// A trailing currency symbol is not a prefix and stays in the unit.
		{"4.99€ / device", "€ / device"},
		{"$10 Per User/Month", "per user/month"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractUnit(tt.input); got != tt.want {
				t.Errorf("ExtractUnit(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCallUs(t *testing.T) {
	keywords := []string{"call", "custom", "quote", "contact"}

	tests := []struct {
		input string
		want  bool
	}{
		{"Call Us!", true},
		{"Contact Sales", true},
		{"Custom Quote", true},
		{"Request a quote", true},
		{"$10 per user", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsCallUs(tt.input, keywords); got != tt.want {
				t.Errorf("IsCallUs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"int", 100, "100", true},
		{"float", 33.3, "33.3", true},
		{"plain string", "50", "50", true},
		{"percent suffix", "100%", "100", true},
		{"padded", "  33.3 %  ", "33.3", true},
		{"negative", "-20%", "-20", true},
		{"not applicable", "N/A", "", false},
		{"question marks", "???", "", false},
		{"nil", nil, "", false},
		{"list", []any{"50%"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePercent(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParsePercent(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("ParsePercent(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripFootnoteRefs(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$2,500[^price-note]", "$2,500"},
		{"$10[^a] per u/m[^b]", "$10 per u/m"},
		{"$10 per u/m", "$10 per u/m"},
	}

	for _, tt := range tests {
		if got := StripFootnoteRefs(tt.input); got != tt.want {
			t.Errorf("StripFootnoteRefs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
