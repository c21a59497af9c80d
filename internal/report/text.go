package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/untoldecay/modelscore/internal/compare"
	"github.com/untoldecay/modelscore/internal/metrics"
	"github.com/untoldecay/modelscore/internal/terms"
	"github.com/untoldecay/modelscore/internal/ui"
)

func ratio(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func metricRow(label string, r metrics.Result) []string {
	return []string{
		label,
		ratio(r.Precision),
		ratio(r.Recall),
		ui.RenderScore(r.F1, ratio(r.F1)),
		strconv.Itoa(r.TruePositives),
		strconv.Itoa(r.FalsePositives),
		strconv.Itoa(r.FalseNegatives),
	}
}

var metricHeaders = []string{"Element Type", "Precision", "Recall", "F1-Score", "TP", "FP", "FN"}

// Models renders a model report for the terminal. verbose adds the
// itemized differences and near-miss hints.
func Models(r *compare.Report, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", ui.RenderBold("PlantUML Model Comparison Results"))
	fmt.Fprintf(&b, "Reference Model: %s\n", ui.RenderAccent(r.ReferenceModel))
	fmt.Fprintf(&b, "  Classes: %d\n  Relationships: %d\n  Attributes: %d\n",
		r.ReferenceStats.Classes, r.ReferenceStats.Relationships, r.ReferenceStats.Attributes)

	for i, c := range r.Comparisons {
		fmt.Fprintf(&b, "\n%s %s\n", ui.RenderBold(fmt.Sprintf("Model %d:", i+1)), ui.RenderAccent(c.ModelPath))
		fmt.Fprintf(&b, "  Classes: %d\n  Relationships: %d\n  Attributes: %d\n\n",
			c.ModelStats.Classes, c.ModelStats.Relationships, c.ModelStats.Attributes)

		m := c.Metrics
		t := ui.NewMetricsTable(metricHeaders, [][]string{
			metricRow("Classes", m.Classes),
			metricRow("Relationships", m.Relationships),
			metricRow("Attributes", m.Attributes),
			metricRow("Overall", m.Overall),
		})
		b.WriteString(t.String())
		b.WriteString("\n\n")

		d := c.Differences
		b.WriteString(ui.RenderBold("Differences Summary:") + "\n")
		fmt.Fprintf(&b, "  Missing Classes: %d\n", len(d.MissingClasses))
		fmt.Fprintf(&b, "  Extra Classes: %d\n", len(d.ExtraClasses))
		fmt.Fprintf(&b, "  Missing Relationships: %d\n", len(d.MissingRelationships))
		fmt.Fprintf(&b, "  Extra Relationships: %d\n", len(d.ExtraRelationships))
		fmt.Fprintf(&b, "  Missing Attributes: %d\n", len(d.MissingAttributes))
		fmt.Fprintf(&b, "  Extra Attributes: %d\n", len(d.ExtraAttributes))

		if verbose {
			writeDetails(&b, i+1, c)
		}
	}
	return b.String()
}

func writeDetails(b *strings.Builder, n int, c compare.Comparison) {
	fmt.Fprintf(b, "\n%s\n", ui.RenderBold(fmt.Sprintf("Detailed Differences for Model %d:", n)))
	d := c.Differences
	writeItems(b, "Missing Classes", "-", d.MissingClasses, ui.RenderFail)
	writeItems(b, "Extra Classes", "+", d.ExtraClasses, ui.RenderWarn)
	writeItems(b, "Missing Relationships", "-", d.MissingRelationships, ui.RenderFail)
	writeItems(b, "Extra Relationships", "+", d.ExtraRelationships, ui.RenderWarn)
	writeItems(b, "Missing Attributes", "-", d.MissingAttributes, ui.RenderFail)
	writeItems(b, "Extra Attributes", "+", d.ExtraAttributes, ui.RenderWarn)

	if len(c.NearMisses) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", ui.RenderBold("Possible Spelling Variants:"))
	for _, nm := range c.NearMisses {
		fmt.Fprintf(b, "  %s %s ~ %s\n", ui.RenderMuted("?"), nm.Missing, strings.Join(nm.Candidates, ", "))
	}
}

// writeItems lists items under a counted title; empty groups are omitted.
func writeItems(b *strings.Builder, title, marker string, items []string, style func(string) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(b, "  %s %s\n", style(marker), it)
	}
}

// Terms renders a term report for the terminal.
func Terms(r *terms.Report) string {
	var b strings.Builder
	b.WriteString(ui.RenderBold("TERMS CSV COMPARISON RESULTS") + "\n")

	for _, c := range r.Comparisons {
		fmt.Fprintf(&b, "\n%s\n", ui.RenderAccent("--- "+strings.ToUpper(c.FileType)+" ---"))
		fmt.Fprintf(&b, "Reference: %s\n", c.ReferencePath)
		fmt.Fprintf(&b, "Model:     %s\n", c.ModelPath)
		fmt.Fprintf(&b, "\nCounts:\n  Reference terms: %d\n  Model terms:     %d\n\n", c.ReferenceCount, c.ModelCount)

		t := ui.NewMetricsTable(
			[]string{"Kind", "Precision", "Recall", "F1-Score", "TP", "FP", "FN"},
			[][]string{metricRow("Terms", c.Metrics)},
		)
		b.WriteString(t.String())
		b.WriteString("\n")

		writeTermList(&b, "Matched Terms", "+", c.Details.MatchedTerms, ui.RenderPass)
		writeTermList(&b, "False Positives - in model but not in reference", "-", c.Details.FalsePositives, ui.RenderWarn)
		writeTermList(&b, "False Negatives - in reference but not in model", "!", c.Details.FalseNegatives, ui.RenderFail)
	}
	return b.String()
}

// writeTermList always prints the title, even for an empty list.
func writeTermList(b *strings.Builder, title, marker string, items []string, style func(string) string) {
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(b, "  %s %s\n", style(marker), it)
	}
}
