package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteFootnotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line quoted",
			input: "name: Example\nfootnotes: '[^note]: Enterprise only'\n",
			want:  "name: Example\nvendor_note: Enterprise only\n",
		},
		{
			name:  "multi line continuation",
			input: "footnotes: '[^note]: Enterprise\n  plan only'\nname: Example\n",
			want:  "vendor_note: Enterprise plan only\nname: Example\n",
		},
		{
			name:  "escaped single quotes",
			input: "footnotes: '[^note]: It''s complicated'\n",
			want:  "vendor_note: \"It's complicated\"\n",
		},
		{
			name:  "value needing quoting",
			input: "footnotes: '[^note]: Pricing: see site'\n",
			want:  "vendor_note: \"Pricing: see site\"\n",
		},
		{
			name:  "empty note is dropped",
			input: "name: Example\nfootnotes: ''\n",
			want:  "name: Example\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Rewrite([]byte(tt.input))
			assert.True(t, changed)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRewritePricingNote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "quote maps to canonical sentence",
			input: "pricing_note: Quote\n",
			want:  "pricing_source_info: " + QuoteSentence + "\n",
		},
		{
			name:  "other values carried over",
			input: "pricing_note: Annual billing only\n",
			want:  "pricing_source_info: Annual billing only\n",
		},
		{
			name:  "empty value dropped",
			input: "name: Example\npricing_note:\n",
			want:  "name: Example\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Rewrite([]byte(tt.input))
			assert.True(t, changed)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRewriteStripsPricingRefs(t *testing.T) {
	input := "base_pricing: $10 per u/m[^note]\nsso_pricing: $20[^note] per u/m\npercent_increase: 100%[^note]\nvendor_note: keep[^this]\n"
	want := "base_pricing: $10 per u/m\nsso_pricing: $20 per u/m\npercent_increase: 100%\nvendor_note: keep[^this]\n"

	got, changed := Rewrite([]byte(input))
	assert.True(t, changed)
	assert.Equal(t, want, string(got))
}

func TestRewriteUnchanged(t *testing.T) {
	input := "name: Example\nbase_pricing: $10 per u/m\nvendor_note: modern already\n"

	got, changed := Rewrite([]byte(input))
	assert.False(t, changed)
	assert.Equal(t, input, string(got))
}

func TestFileRewritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pricing_note: Quote\n"), 0o644))

	changed, err := File(path)
	require.NoError(t, err)
	assert.True(t, changed)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pricing_source_info: "+QuoteSentence+"\n", string(content))

	// Second run is a no-op.
	changed, err = File(path)
	require.NoError(t, err)
	assert.False(t, changed)
}
