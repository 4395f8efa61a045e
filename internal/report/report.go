// Package report aggregates per-file validation results into a run summary
// and renders them for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"ssolint/engine/validate"
)

// FileResult pairs one vendor file with its validation outcome.
type FileResult struct {
	Path   string           `json:"path"`
	Result *validate.Result `json:"result"`
}

// Summary describes one validation run. Results are independent across
// files; the summary only counts and labels them.
type Summary struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	Scanned           int       `json:"scanned"`
	FilesWithErrors   int       `json:"files_with_errors"`
	FilesWithWarnings int       `json:"files_with_warnings"`
	// Categories holds each distinct CATEGORY:<name> tag present across
	// the run, sorted lexicographically, for machine consumption.
	Categories []string `json:"categories"`
}

// BuildSummary computes the run summary over all file results.
func BuildSummary(results []FileResult) Summary {
	summary := Summary{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Scanned:    len(results),
		Categories: CategoryTags(results),
	}
	for _, fr := range results {
		if len(fr.Result.Errors) > 0 {
			summary.FilesWithErrors++
		}
		if len(fr.Result.Warnings) > 0 {
			summary.FilesWithWarnings++
		}
	}
	return summary
}

// CategoryTags returns the distinct category tags across all results,
// sorted and de-duplicated. Tags derive only from the engine's own
// structured diagnostics, never from record content.
func CategoryTags(results []FileResult) []string {
	seen := map[string]bool{}
	for _, fr := range results {
		for _, tag := range fr.Result.Categories() {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Reporter renders results to a terminal.
type Reporter struct {
	out io.Writer

	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	okStyle   lipgloss.Style
	dimStyle  lipgloss.Style
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:       out,
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		dimStyle:  lipgloss.NewStyle().Faint(true),
	}
}

// PrintFile renders one file's diagnostics. Clean files stay silent.
func (r *Reporter) PrintFile(fr FileResult) {
	name := filepath.Base(fr.Path)

	if len(fr.Result.Errors) > 0 {
		fmt.Fprintf(r.out, "%s %s\n", r.errStyle.Render("❌"), name)
		for _, msg := range fr.Result.ErrorMessages() {
			fmt.Fprintf(r.out, "   %s %s\n", r.errStyle.Render("Error:"), msg)
		}
	}
	if len(fr.Result.Warnings) > 0 {
		fmt.Fprintf(r.out, "%s %s\n", r.warnStyle.Render("⚠️"), name)
		for _, msg := range fr.Result.WarningMessages() {
			fmt.Fprintf(r.out, "   %s %s\n", r.warnStyle.Render("Warning:"), msg)
		}
	}
}

// PrintSummary renders the run totals and category tags.
func (r *Reporter) PrintSummary(summary Summary) {
	fmt.Fprintf(r.out, "\n%s\n", r.dimStyle.Render("========================================"))
	fmt.Fprintf(r.out, "Validation complete. Scanned %d files.\n", summary.Scanned)
	fmt.Fprintf(r.out, "Errors: %d files\n", summary.FilesWithErrors)
	fmt.Fprintf(r.out, "Warnings: %d files\n", summary.FilesWithWarnings)
	if summary.FilesWithErrors == 0 && summary.FilesWithWarnings == 0 {
		fmt.Fprintln(r.out, r.okStyle.Render("All records valid."))
	}
	for _, tag := range summary.Categories {
		fmt.Fprintln(r.out, tag)
	}
	fmt.Fprintf(r.out, "%s\n", r.dimStyle.Render("run "+summary.RunID))
}

// PrintJSON renders the whole run as one JSON document.
func (r *Reporter) PrintJSON(results []FileResult, summary Summary) error {
	doc := struct {
		Summary Summary      `json:"summary"`
		Files   []FileResult `json:"files"`
	}{Summary: summary, Files: results}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
