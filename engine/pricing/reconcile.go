package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ssolint/pkg/diag"
)

// Tolerance absorbs single-decimal rounding by contributors, e.g. declaring
// "33%" for a true 33.3%.
var defaultTolerance = decimal.NewFromFloat(1.5)

// Reconciler cross-checks a declared percent_increase against magnitudes
// extracted from the base and SSO pricing fields. It is pure: it never
// touches the record's backing file.
type Reconciler struct {
	callUsKeywords []string
	tolerance      decimal.Decimal
}

// NewReconciler creates a reconciler using the given call-us keyword set.
func NewReconciler(callUsKeywords []string) *Reconciler {
	return &Reconciler{
		callUsKeywords: callUsKeywords,
		tolerance:      defaultTolerance,
	}
}

// Suggestion is a proposed record patch for a derivable field. Applying it
// is the caller's business; the validator itself stays side-effect free.
type Suggestion struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Line  string `json:"line"`
}

// Reconcile runs the percentage checks. Callers invoke it only once schema
// validation has found both pricing fields non-empty; absences were already
// reported there.
func (r *Reconciler) Reconcile(baseRaw, ssoRaw, percentRaw any) []diag.Diagnostic {
	var out []diag.Diagnostic

	base := StripFootnoteRefs(stringify(baseRaw))
	sso := StripFootnoteRefs(stringify(ssoRaw))
	provided, hasProvided := ParsePercent(percentRaw)

	// Contact-sales pricing has no computable percentage. A supplied
	// number contradicts that, which is worth a flag but nothing more.
	if r.isCallUs(ssoRaw, sso) {
		if hasProvided {
			out = append(out, diag.NewCallUsContradiction(sso, provided.String()))
		}
		return out
	}

	baseVal, baseOK := ExtractPrice(base)
	ssoVal, ssoOK := ExtractPrice(sso)
	if !baseOK || !ssoOK {
		return append(out, diag.NewUnparsablePrice(base, sso))
	}

	baseUnit := ExtractUnit(base)
	ssoUnit := ExtractUnit(sso)
	unitsMatch := baseUnit == ssoUnit
	if !unitsMatch {
		out = append(out, diag.NewUnitMismatch(baseUnit, ssoUnit))
	}

	if baseVal.IsZero() {
		return append(out, diag.NewZeroBasePrice())
	}

	calculated := percentIncrease(baseVal, ssoVal)

	if !hasProvided {
		expected := calculated.Round(0).String() + "%"
		return append(out, diag.NewPercentMissing(expected, unitsMatch))
	}

	if calculated.Sub(provided).Abs().GreaterThan(r.tolerance) {
		out = append(out, diag.NewPercentMismatch(
			calculated.StringFixed(1), provided.String(),
			baseVal.String(), ssoVal.String(), unitsMatch))
	}
	return out
}

// Suggest returns the patch a contributor should apply when
// percent_increase is omitted but computable from the pricing fields.
func (r *Reconciler) Suggest(baseRaw, ssoRaw, percentRaw any) (Suggestion, bool) {
	base := StripFootnoteRefs(stringify(baseRaw))
	sso := StripFootnoteRefs(stringify(ssoRaw))

	if _, hasProvided := ParsePercent(percentRaw); hasProvided {
		return Suggestion{}, false
	}
	if r.isCallUs(ssoRaw, sso) {
		return Suggestion{}, false
	}

	baseVal, baseOK := ExtractPrice(base)
	ssoVal, ssoOK := ExtractPrice(sso)
	if !baseOK || !ssoOK || baseVal.IsZero() {
		return Suggestion{}, false
	}

	value := percentIncrease(baseVal, ssoVal).Round(0).String() + "%"
	return Suggestion{
		Field: "percent_increase",
		Value: value,
		Line:  fmt.Sprintf("percent_increase: %s", value),
	}, true
}

// isCallUs applies the heuristic to string values only; non-string pricing
// never classifies as contact-sales.
func (r *Reconciler) isCallUs(raw any, text string) bool {
	if _, isStr := raw.(string); !isStr {
		return false
	}
	return IsCallUs(text, r.callUsKeywords)
}

func percentIncrease(base, sso decimal.Decimal) decimal.Decimal {
	return sso.Sub(base).Div(base).Mul(decimal.NewFromInt(100))
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
