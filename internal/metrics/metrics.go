// Package metrics scores a candidate set against a reference set.
package metrics

import (
	"math"

	"github.com/untoldecay/modelscore/internal/types"
)

// Result holds precision, recall and F1 together with the raw counts.
// Every ratio is 0 when its denominator is 0.
type Result struct {
	Precision      float64 `json:"precision" yaml:"precision"`
	Recall         float64 `json:"recall" yaml:"recall"`
	F1             float64 `json:"f1_score" yaml:"f1_score"`
	TruePositives  int     `json:"true_positives" yaml:"true_positives"`
	FalsePositives int     `json:"false_positives" yaml:"false_positives"`
	FalseNegatives int     `json:"false_negatives" yaml:"false_negatives"`
}

// Compare scores candidate against reference. Values are compared by
// equality only, so callers must pass canonical values.
func Compare[T comparable](reference, candidate types.Set[T]) Result {
	tp := 0
	for v := range candidate {
		if reference.Has(v) {
			tp++
		}
	}
	return FromCounts(tp, candidate.Len()-tp, reference.Len()-tp)
}

// FromCounts derives the ratios from tp/fp/fn counts.
func FromCounts(tp, fp, fn int) Result {
	r := Result{TruePositives: tp, FalsePositives: fp, FalseNegatives: fn}
	if tp+fp > 0 {
		r.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		r.Recall = float64(tp) / float64(tp+fn)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}

// Diff returns the values of reference absent from candidate (missing) and
// the values of candidate absent from reference (extra).
func Diff[T comparable](reference, candidate types.Set[T]) (missing, extra types.Set[T]) {
	return reference.Minus(candidate), candidate.Minus(reference)
}

// Rounded returns r with its ratios rounded to digits decimal places.
// Counts are unchanged. A negative digits leaves r untouched.
func (r Result) Rounded(digits int) Result {
	if digits < 0 {
		return r
	}
	r.Precision = Round(r.Precision, digits)
	r.Recall = Round(r.Recall, digits)
	r.F1 = Round(r.F1, digits)
	return r
}

// Round rounds v half away from zero to digits decimal places.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
