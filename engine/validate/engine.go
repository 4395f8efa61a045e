// Package validate orchestrates per-record validation: structural parse,
// schema enforcement, then percentage reconciliation. One record in, one
// result out; nothing is retained between calls and the source is never
// mutated.
package validate

import (
	"errors"
	"os"

	"ssolint/engine/pricing"
	"ssolint/engine/record"
	"ssolint/pkg/diag"
)

// Result is the engine's verdict on one record. Valid is true iff Errors is
// empty; warnings never affect validity by themselves (callers may opt into
// failing on warnings as policy).
type Result struct {
	Valid    bool              `json:"valid"`
	Warnings []diag.Diagnostic `json:"warnings"`
	Errors   []diag.Diagnostic `json:"errors"`
}

// WarningMessages returns the rendered warning strings in order.
func (r *Result) WarningMessages() []string {
	return messages(r.Warnings)
}

// ErrorMessages returns the rendered error strings in order.
func (r *Result) ErrorMessages() []string {
	return messages(r.Errors)
}

// Categories returns the sorted, de-duplicated category tags for this
// record's errors.
func (r *Result) Categories() []string {
	return diag.Categories(r.Errors)
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

// Engine validates vendor pricing records against an injected schema.
type Engine struct {
	schema     record.Schema
	parser     *record.Parser
	validator  *record.Validator
	reconciler *pricing.Reconciler
}

// NewEngine creates an engine with the default schema.
func NewEngine() *Engine {
	e := &Engine{parser: record.NewParser()}
	return e.WithSchema(record.DefaultSchema())
}

// WithSchema swaps in a different schema version.
func (e *Engine) WithSchema(schema record.Schema) *Engine {
	e.schema = schema
	e.validator = record.NewValidator(schema)
	e.reconciler = pricing.NewReconciler(schema.CallUsKeywords)
	return e
}

// ValidateFile validates a single vendor file.
func (e *Engine) ValidateFile(path string) *Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return &Result{
			Valid:    false,
			Warnings: []diag.Diagnostic{},
			Errors:   []diag.Diagnostic{diag.NewReadFailure(err)},
		}
	}
	return e.Validate(content)
}

// Validate validates one record's raw text. A structural parse failure
// preempts all semantic checks, since no reliable record exists to check;
// every other diagnostic is fully accumulated.
func (e *Engine) Validate(content []byte) *Result {
	result := &Result{
		Warnings: []diag.Diagnostic{},
		Errors:   []diag.Diagnostic{},
	}

	rec, err := e.parser.Parse(content)
	if err != nil {
		result.Errors = append(result.Errors, parseDiagnostic(err))
		return result
	}

	for _, d := range e.validator.Validate(rec) {
		result.append(d)
	}

	// The reconciler only runs when both pricing fields are present; their
	// absence was already reported as a schema error above.
	base := rec.Get(record.FieldBasePricing)
	sso := rec.Get(record.FieldSSOPricing)
	if !record.IsEmptyValue(base) && !record.IsEmptyValue(sso) {
		percent := rec.Get(record.FieldPercentIncrease)
		for _, d := range e.reconciler.Reconcile(base, sso, percent) {
			result.append(d)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// Suggest returns proposed patches for derivable fields, currently just an
// omitted percent_increase. It performs no I/O on the record's source: the
// historical silent write-back during validation is gone for good, and
// applying a suggestion is an explicit separate step.
func (e *Engine) Suggest(content []byte) ([]pricing.Suggestion, error) {
	rec, err := e.parser.Parse(content)
	if err != nil {
		return nil, err
	}

	base := rec.Get(record.FieldBasePricing)
	sso := rec.Get(record.FieldSSOPricing)
	if record.IsEmptyValue(base) || record.IsEmptyValue(sso) {
		return nil, nil
	}

	percent := rec.Get(record.FieldPercentIncrease)
	suggestion, ok := e.reconciler.Suggest(base, sso, percent)
	if !ok {
		return nil, nil
	}
	return []pricing.Suggestion{suggestion}, nil
}

func (r *Result) append(d diag.Diagnostic) {
	if d.Severity == diag.SeverityError {
		r.Errors = append(r.Errors, d)
		return
	}
	r.Warnings = append(r.Warnings, d)
}

func parseDiagnostic(err error) diag.Diagnostic {
	var dup *record.DuplicateKeyError
	if errors.As(err, &dup) {
		return diag.NewDuplicateKeys(dup.Keys)
	}
	if errors.Is(err, record.ErrEmptyDocument) {
		return diag.NewEmptyDocument()
	}
	return diag.NewParseFailure(err)
}
