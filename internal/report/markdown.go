package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/untoldecay/modelscore/internal/compare"
	"github.com/untoldecay/modelscore/internal/metrics"
	"github.com/untoldecay/modelscore/internal/terms"
)

// RunName is the label of a run in aggregation tables: the name of the
// directory holding the run's file.
func RunName(path string) string {
	return filepath.Base(filepath.Dir(path))
}

const (
	metricTableHeader = "| Run | Precision | Recall | F1-Score | TP | FP | FN |\n" +
		"|-----|-----------|--------|----------|----|----|-----|\n"
	termTableHeader = "| Run | Precision | Recall | F1-Score | TP | FP | FN | Model Terms |\n" +
		"|-----|-----------|--------|----------|----|----|-----|-------------|\n"
)

func mdRow(run string, r metrics.Result) string {
	return fmt.Sprintf("| %s | %.4f | %.4f | %.4f | %d | %d | %d |",
		run, r.Precision, r.Recall, r.F1, r.TruePositives, r.FalsePositives, r.FalseNegatives)
}

func mdMeanRow(m metrics.Mean) string {
	return fmt.Sprintf("| **Mean** | **%.4f** | **%.4f** | **%.4f** | %.1f | %.1f | %.1f |",
		m.Precision, m.Recall, m.F1, m.TruePositives, m.FalsePositives, m.FalseNegatives)
}

type kindColumn struct {
	title string
	pick  func(compare.KindMetrics) metrics.Result
}

var kindColumns = []kindColumn{
	{"Classes", func(k compare.KindMetrics) metrics.Result { return k.Classes }},
	{"Relationships", func(k compare.KindMetrics) metrics.Result { return k.Relationships }},
	{"Attributes", func(k compare.KindMetrics) metrics.Result { return k.Attributes }},
	{"Overall", func(k compare.KindMetrics) metrics.Result { return k.Overall }},
}

// ModelsMarkdown renders the multi-run aggregation of a model report:
// reference statistics, per-kind tables with a mean row, and an F1 summary.
// reference is the label printed for the reference model.
func ModelsMarkdown(r *compare.Report, reference string) string {
	var b strings.Builder

	b.WriteString("## Model Comparison Results\n\n")
	fmt.Fprintf(&b, "**Reference Model:** `%s`\n\n", reference)
	fmt.Fprintf(&b, "- Classes: %d\n", r.ReferenceStats.Classes)
	fmt.Fprintf(&b, "- Relationships: %d\n", r.ReferenceStats.Relationships)
	fmt.Fprintf(&b, "- Attributes: %d\n\n", r.ReferenceStats.Attributes)

	if n := len(r.Comparisons); n > 0 {
		var classes, rels, attrs float64
		for _, c := range r.Comparisons {
			classes += float64(c.ModelStats.Classes)
			rels += float64(c.ModelStats.Relationships)
			attrs += float64(c.ModelStats.Attributes)
		}
		b.WriteString("**Average Model Statistics (across all runs):**\n\n")
		fmt.Fprintf(&b, "- Classes: %.1f\n", classes/float64(n))
		fmt.Fprintf(&b, "- Relationships: %.1f\n", rels/float64(n))
		fmt.Fprintf(&b, "- Attributes: %.1f\n\n", attrs/float64(n))
	}

	means := make([]metrics.Mean, len(kindColumns))
	for i, col := range kindColumns {
		fmt.Fprintf(&b, "### %s\n\n", col.title)
		b.WriteString(metricTableHeader)
		results := make([]metrics.Result, 0, len(r.Comparisons))
		for _, c := range r.Comparisons {
			res := col.pick(c.Metrics)
			results = append(results, res)
			b.WriteString(mdRow(RunName(c.ModelPath), res) + "\n")
		}
		if mean, ok := metrics.Average(results); ok {
			means[i] = mean
			b.WriteString(mdMeanRow(mean) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("### Summary (F1-Scores)\n\n")
	b.WriteString("| Run | Classes | Relationships | Attributes | Overall |\n")
	b.WriteString("|-----|---------|---------------|------------|---------|\n")
	for _, c := range r.Comparisons {
		m := c.Metrics
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4f | %.4f |\n",
			RunName(c.ModelPath), m.Classes.F1, m.Relationships.F1, m.Attributes.F1, m.Overall.F1)
	}
	if len(r.Comparisons) > 0 {
		fmt.Fprintf(&b, "| **Mean** | **%.4f** | **%.4f** | **%.4f** | **%.4f** |\n",
			means[0].F1, means[1].F1, means[2].F1, means[3].F1)
	}
	return b.String()
}

// TermTable is the aggregation of one term file across runs.
type TermTable struct {
	// File is the file name shared by the baseline and every run.
	File           string `json:"file" yaml:"file"`
	ReferenceCount int    `json:"reference_count" yaml:"reference_count"`
	// Runs holds the comparisons of the runs that have the file, with
	// ModelPath inside the run directory.
	Runs []terms.Comparison `json:"runs" yaml:"runs"`
}

// TermsMarkdown renders the multi-run aggregation of term comparisons: one
// table per file and an F1 summary across files. Runs lacking a file show
// N/A in the summary.
func TermsMarkdown(tables []TermTable) string {
	var b strings.Builder

	b.WriteString("## Terms CSV Comparison Results\n\n")
	b.WriteString("**Reference (Manual Baseline):**\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "- `%s`: %d terms\n", t.File, t.ReferenceCount)
	}
	b.WriteString("\n")

	b.WriteString("**Average Model Statistics (across all runs):**\n\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "- `%s`: %.1f terms\n", t.File, meanModelCount(t.Runs))
	}
	b.WriteString("\n")

	means := make([]*metrics.Mean, len(tables))
	for i, t := range tables {
		fmt.Fprintf(&b, "### %s Comparison\n\n", t.File)
		b.WriteString(termTableHeader)
		results := make([]metrics.Result, 0, len(t.Runs))
		for _, c := range t.Runs {
			results = append(results, c.Metrics)
			b.WriteString(mdRow(RunName(c.ModelPath), c.Metrics))
			fmt.Fprintf(&b, " %d |\n", c.ModelCount)
		}
		if mean, ok := metrics.Average(results); ok {
			means[i] = &mean
			b.WriteString(mdMeanRow(mean))
			fmt.Fprintf(&b, " %.1f |\n", meanModelCount(t.Runs))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Summary (F1-Scores)\n\n")
	b.WriteString("| Run |")
	sep := "|-----|"
	for _, t := range tables {
		fmt.Fprintf(&b, " %s |", t.File)
		sep += strings.Repeat("-", len(t.File)+2) + "|"
	}
	b.WriteString("\n" + sep + "\n")

	for _, run := range termRuns(tables) {
		fmt.Fprintf(&b, "| %s |", run)
		for _, t := range tables {
			if c, ok := findRun(t.Runs, run); ok {
				fmt.Fprintf(&b, " %.4f |", c.Metrics.F1)
			} else {
				b.WriteString(" N/A |")
			}
		}
		b.WriteString("\n")
	}

	complete := len(tables) > 0
	for _, m := range means {
		if m == nil {
			complete = false
		}
	}
	if complete {
		b.WriteString("| **Mean** |")
		for _, m := range means {
			fmt.Fprintf(&b, " **%.4f** |", m.F1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func meanModelCount(runs []terms.Comparison) float64 {
	if len(runs) == 0 {
		return 0
	}
	total := 0
	for _, c := range runs {
		total += c.ModelCount
	}
	return float64(total) / float64(len(runs))
}

// termRuns lists run names in first-seen order across all tables.
func termRuns(tables []TermTable) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tables {
		for _, c := range t.Runs {
			name := RunName(c.ModelPath)
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func findRun(runs []terms.Comparison, name string) (terms.Comparison, bool) {
	for _, c := range runs {
		if RunName(c.ModelPath) == name {
			return c, true
		}
	}
	return terms.Comparison{}, false
}
