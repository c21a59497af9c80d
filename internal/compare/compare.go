// Package compare scores candidate diagrams against a reference diagram.
package compare

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/untoldecay/modelscore/internal/debug"
	"github.com/untoldecay/modelscore/internal/extractor"
	"github.com/untoldecay/modelscore/internal/metrics"
	"github.com/untoldecay/modelscore/internal/types"
)

// Document is one diagram to score.
type Document struct {
	Path    string
	Content string
}

// ReadDocument reads path in a single call.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Document{Path: path, Content: string(data)}, nil
}

// Options tune a comparison run.
type Options struct {
	// Workers bounds concurrent candidate scoring. Values below 1 mean 1.
	Workers int
	// Precision is the number of decimal places kept in ratios. Negative
	// keeps full precision.
	Precision int
	// NearMisses adds spelling hints for missing entities.
	NearMisses bool
	// Extractor defaults to the PlantUML extractor.
	Extractor extractor.Extractor
}

// DefaultOptions returns the options used by the CLI when nothing is
// configured.
func DefaultOptions() Options {
	return Options{Workers: 4, Precision: 4}
}

// KindMetrics holds one metric result per element kind plus the overall
// micro-average over all kinds.
type KindMetrics struct {
	Classes       metrics.Result `json:"classes" yaml:"classes"`
	Relationships metrics.Result `json:"relationships" yaml:"relationships"`
	Attributes    metrics.Result `json:"attributes" yaml:"attributes"`
	Overall       metrics.Result `json:"overall" yaml:"overall"`
}

// Differences itemizes what a candidate missed and added, each list sorted.
type Differences struct {
	MissingClasses       []string `json:"missing_classes" yaml:"missing_classes"`
	ExtraClasses         []string `json:"extra_classes" yaml:"extra_classes"`
	MissingRelationships []string `json:"missing_relationships" yaml:"missing_relationships"`
	ExtraRelationships   []string `json:"extra_relationships" yaml:"extra_relationships"`
	MissingAttributes    []string `json:"missing_attributes" yaml:"missing_attributes"`
	ExtraAttributes      []string `json:"extra_attributes" yaml:"extra_attributes"`
}

// Comparison is the score of a single candidate.
type Comparison struct {
	ModelPath   string      `json:"model_path" yaml:"model_path"`
	ModelStats  types.Stats `json:"model_stats" yaml:"model_stats"`
	Metrics     KindMetrics `json:"metrics" yaml:"metrics"`
	Differences Differences `json:"differences" yaml:"differences"`
	NearMisses  []NearMiss  `json:"near_misses,omitempty" yaml:"near_misses,omitempty"`
}

// Report is the result of scoring every candidate against one reference.
// Comparisons are in candidate order.
type Report struct {
	ReferenceModel string       `json:"reference_model" yaml:"reference_model"`
	ReferenceStats types.Stats  `json:"reference_stats" yaml:"reference_stats"`
	Comparisons    []Comparison `json:"comparisons" yaml:"comparisons"`
}

// Models extracts the reference once and scores each candidate against it.
// The only error source is ctx.
func Models(ctx context.Context, reference Document, candidates []Document, opts Options) (*Report, error) {
	pipeline := extractor.NewPipeline(opts.Extractor)

	ref, err := pipeline.Run(ctx, reference.Path, reference.Content)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ReferenceModel: reference.Path,
		ReferenceStats: ref.Model.Stats(),
		Comparisons:    make([]Comparison, len(candidates)),
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range candidates {
		g.Go(func() error {
			res, err := pipeline.Run(gctx, doc.Path, doc.Content)
			if err != nil {
				return err
			}
			report.Comparisons[i] = Score(ref.Model, res.Model, opts)
			report.Comparisons[i].ModelPath = doc.Path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debug.Logf("compared %d candidate(s) against %s", len(candidates), reference.Path)
	return report, nil
}

// Score compares two built models. ModelPath is left empty.
func Score(reference, candidate *types.Model, opts Options) Comparison {
	digits := opts.Precision

	missingClasses, extraClasses := metrics.Diff(reference.Entities, candidate.Entities)
	missingRels, extraRels := metrics.Diff(reference.Relationships, candidate.Relationships)
	missingAttrs, extraAttrs := metrics.Diff(reference.Attributes, candidate.Attributes)

	c := Comparison{
		ModelStats: candidate.Stats(),
		Metrics: KindMetrics{
			Classes:       metrics.Compare(reference.Entities, candidate.Entities).Rounded(digits),
			Relationships: metrics.Compare(reference.Relationships, candidate.Relationships).Rounded(digits),
			Attributes:    metrics.Compare(reference.Attributes, candidate.Attributes).Rounded(digits),
			Overall:       metrics.Compare(reference.Elements(), candidate.Elements()).Rounded(digits),
		},
		Differences: Differences{
			MissingClasses:       types.SortedStrings(missingClasses, identity),
			ExtraClasses:         types.SortedStrings(extraClasses, identity),
			MissingRelationships: types.SortedStrings(missingRels, types.Relationship.String),
			ExtraRelationships:   types.SortedStrings(extraRels, types.Relationship.String),
			MissingAttributes:    types.SortedStrings(missingAttrs, types.Attribute.String),
			ExtraAttributes:      types.SortedStrings(extraAttrs, types.Attribute.String),
		},
	}
	if opts.NearMisses {
		c.NearMisses = FindNearMisses(c.Differences.MissingClasses, c.Differences.ExtraClasses)
	}
	return c
}

func identity(s string) string { return s }
