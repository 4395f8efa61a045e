package record

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned for input that parses to nothing.
var ErrEmptyDocument = errors.New("empty YAML file")

// DuplicateKeyError reports top-level field names that appear more than
// once. Ambiguous contributor intent is never silently resolved by keeping
// the last occurrence.
type DuplicateKeyError struct {
	// Keys is sorted and de-duplicated.
	Keys []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key(s) in YAML: %s", strings.Join(e.Keys, ", "))
}

// Parser turns raw record text into a Record. It rejects structurally
// invalid input before any semantic check runs and never mutates the source.
type Parser struct{}

// NewParser creates a record parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a single vendor file.
func (p *Parser) ParseFile(path string) (Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(content)
}

// Parse parses one record. It returns ErrEmptyDocument for empty or null
// documents and a *DuplicateKeyError when any top-level key repeats.
func (p *Parser) Parse(content []byte) (Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := root.Content[0]
	if doc.Tag == "!!null" {
		return nil, ErrEmptyDocument
	}

	if doc.Kind == yaml.MappingNode {
		if dups := duplicateKeys(doc); len(dups) > 0 {
			return nil, &DuplicateKeyError{Keys: dups}
		}
	}

	var rec Record
	if err := doc.Decode(&rec); err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, ErrEmptyDocument
	}
	return rec, nil
}

// duplicateKeys inspects the raw mapping node, where repeats are still
// visible. Decoding straight into a map would keep only one occurrence.
func duplicateKeys(mapping *yaml.Node) []string {
	seen := map[string]int{}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		seen[mapping.Content[i].Value]++
	}

	var dups []string
	for key, count := range seen {
		if count > 1 {
			dups = append(dups, key)
		}
	}
	sort.Strings(dups)
	return dups
}
