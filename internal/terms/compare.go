package terms

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/untoldecay/modelscore/internal/metrics"
	"github.com/untoldecay/modelscore/internal/types"
)

// Result is a term comparison with the itemized terms in their original
// spelling. Matched and Extra use the candidate's spelling, Missing the
// reference's.
type Result struct {
	metrics.Result
	Matched []string
	Extra   []string
	Missing []string
}

// Compare scores candidate against reference over canonical keys.
func Compare(reference, candidate *Vocabulary) Result {
	missing, extra := metrics.Diff(reference.Keys(), candidate.Keys())
	return Result{
		Result:  metrics.Compare(reference.Keys(), candidate.Keys()),
		Matched: spell(candidate, reference.Keys().Intersect(candidate.Keys())),
		Extra:   spell(candidate, extra),
		Missing: spell(reference, missing),
	}
}

func spell(v *Vocabulary, keys types.Set[string]) []string {
	out := make([]string, 0, keys.Len())
	for k := range keys {
		out = append(out, v.Original(k))
	}
	slices.Sort(out)
	return out
}

// Details lists the itemized terms of a comparison.
type Details struct {
	MatchedTerms   []string `json:"matched_terms" yaml:"matched_terms"`
	FalsePositives []string `json:"false_positives" yaml:"false_positives"`
	FalseNegatives []string `json:"false_negatives" yaml:"false_negatives"`
}

// Comparison is one reference/model file pair in a term report.
type Comparison struct {
	FileType       string         `json:"file_type" yaml:"file_type"`
	ReferencePath  string         `json:"reference_path" yaml:"reference_path"`
	ModelPath      string         `json:"model_path" yaml:"model_path"`
	ReferenceCount int            `json:"reference_count" yaml:"reference_count"`
	ModelCount     int            `json:"model_count" yaml:"model_count"`
	Metrics        metrics.Result `json:"metrics" yaml:"metrics"`
	Details        Details        `json:"details" yaml:"details"`
}

// Report groups the comparisons of one invocation.
type Report struct {
	Comparisons []Comparison `json:"comparisons" yaml:"comparisons"`
}

// FileType derives the report label of a CSV path: its base name without
// extension ("scored_terms.csv" → "scored_terms").
func FileType(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CompareFiles reads both files and builds the report entry. Ratios are
// rounded to digits places (negative keeps full precision).
func CompareFiles(referencePath, modelPath, fileType, column string, digits int) (*Comparison, error) {
	reference, err := ReadFile(referencePath, column)
	if err != nil {
		return nil, err
	}
	candidate, err := ReadFile(modelPath, column)
	if err != nil {
		return nil, err
	}

	res := Compare(reference, candidate)
	return &Comparison{
		FileType:       fileType,
		ReferencePath:  referencePath,
		ModelPath:      modelPath,
		ReferenceCount: reference.Len(),
		ModelCount:     candidate.Len(),
		Metrics:        res.Result.Rounded(digits),
		Details: Details{
			MatchedTerms:   res.Matched,
			FalsePositives: res.Extra,
			FalseNegatives: res.Missing,
		},
	}, nil
}
