// Package stale finds vendor records whose updated_at date exceeds an age
// threshold. Staleness is independent of validation: unparsable files and
// missing dates are simply skipped here.
package stale

import (
	"path/filepath"
	"sort"
	"time"

	"ssolint/engine/record"
)

// DefaultThresholdDays is two years, the point at which crowd-sourced
// pricing is assumed to have drifted.
const DefaultThresholdDays = 730

// Entry is one stale vendor.
type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scanner checks vendor files against an age cutoff.
type Scanner struct {
	now func() time.Time
}

// NewScanner creates a scanner using the wall clock.
func NewScanner() *Scanner {
	return &Scanner{now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Scanner) WithNow(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Cutoff returns the date before which a record counts as stale.
func (s *Scanner) Cutoff(days int) time.Time {
	return s.now().AddDate(0, 0, -days)
}

// Scan returns the stale vendors among files, oldest first.
func (s *Scanner) Scan(files []string, days int) []Entry {
	cutoff := s.Cutoff(days)
	parser := record.NewParser()

	var stale []Entry
	for _, path := range files {
		rec, err := parser.ParseFile(path)
		if err != nil {
			continue
		}

		updatedAt, ok := parseDate(rec.Get(record.FieldUpdatedAt))
		if !ok || !updatedAt.Before(cutoff) {
			continue
		}

		name, ok := rec.StringValue(record.FieldName)
		if !ok {
			name = filepath.Base(path)
		}
		stale = append(stale, Entry{Name: name, Path: path, UpdatedAt: updatedAt})
	}

	sort.Slice(stale, func(i, j int) bool {
		if !stale[i].UpdatedAt.Equal(stale[j].UpdatedAt) {
			return stale[i].UpdatedAt.Before(stale[j].UpdatedAt)
		}
		return stale[i].Name < stale[j].Name
	})
	return stale
}

func parseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := time.Parse("2006-01-02", val)
		return t, err == nil
	}
	return time.Time{}, false
}
