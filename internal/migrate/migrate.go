// Package migrate performs the one-time rewrite of legacy vendor fields:
//
//   - `footnotes: '[^id]: text'` becomes `vendor_note: text`, and `[^id]`
//     references are stripped from the pricing fields.
//   - `pricing_note: Quote` becomes the canonical
//     `pricing_source_info: Pricing comes from a quote`; other non-empty
//     values are carried over verbatim and empty ones are dropped.
//
// The validator itself only flags these legacy forms; rewriting them is
// this tool's job, run explicitly and exactly once per record.
package migrate

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	footnotesField   = regexp.MustCompile(`^footnotes:\s*`)
	pricingNoteField = regexp.MustCompile(`^pricing_note:\s*`)
	pricingFields    = regexp.MustCompile(`^(sso_pricing|base_pricing|percent_increase):\s*`)

	// "[^some-id]: " definition prefix and "[^some-id]" references.
	footnoteDef = regexp.MustCompile(`^\[\^[^\]]+\]:\s*`)
	footnoteRef = regexp.MustCompile(`\[\^[^\]]+\]`)
)

// QuoteSentence is the canonical replacement for `pricing_note: Quote`.
const QuoteSentence = "Pricing comes from a quote"

// File rewrites one vendor file in place and reports whether it changed.
func File(path string) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	rewritten, changed := Rewrite(original)
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, rewritten, 0o644); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	return true, nil
}

// Rewrite is the pure migration over one record's text.
func Rewrite(content []byte) ([]byte, bool) {
	lines := splitLines(string(content))
	var out []string
	changed := false

	for i := 0; i < len(lines); {
		line := lines[i]

		if footnotesField.MatchString(line) {
			// The value may be a multi-line YAML scalar; absorb every
			// indented continuation line.
			first := strings.TrimRight(footnotesField.ReplaceAllString(line, ""), "\r\n")
			j := i + 1
			var rest []string
			for j < len(lines) && isContinuation(lines[j]) {
				rest = append(rest, strings.TrimSpace(lines[j]))
				j++
			}

			combined := strings.TrimSpace(strings.Join(append([]string{first}, rest...), " "))
			combined = unquote(combined)
			combined = strings.ReplaceAll(combined, "''", "'")

			if note := strings.TrimSpace(footnoteDef.ReplaceAllString(combined, "")); note != "" {
				out = append(out, renderField("vendor_note", note))
			}

			// The legacy field is dropped whether or not a note survived.
			changed = true
			i = j
			continue
		}

		if pricingNoteField.MatchString(line) {
			value := strings.TrimSpace(pricingNoteField.ReplaceAllString(line, ""))
			if value != "" {
				if strings.EqualFold(value, "quote") {
					out = append(out, "pricing_source_info: "+QuoteSentence+"\n")
				} else {
					out = append(out, "pricing_source_info: "+value+"\n")
				}
			}
			changed = true
			i++
			continue
		}

		if pricingFields.MatchString(line) {
			if stripped := footnoteRef.ReplaceAllString(line, ""); stripped != line {
				out = append(out, stripped)
				changed = true
				i++
				continue
			}
		}

		out = append(out, line)
		i++
	}

	if !changed {
		return content, false
	}
	return []byte(strings.Join(out, "")), true
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func isContinuation(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

// unquote removes one matching pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// renderField emits a plain scalar when safe, quoting values that would
// otherwise break YAML.
func renderField(field, value string) string {
	if strings.ContainsAny(value, "':#") {
		escaped := strings.ReplaceAll(value, `"`, `\"`)
		return fmt.Sprintf("%s: \"%s\"\n", field, escaped)
	}
	return fmt.Sprintf("%s: %s\n", field, value)
}
