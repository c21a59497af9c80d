package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/report"
	"github.com/untoldecay/modelscore/internal/terms"
	"github.com/untoldecay/modelscore/internal/ui"
)

type termsRun struct {
	reference       string
	model           string
	scoredReference string
	scoredModel     string
	column          string
	precision       int
}

var termsCmd = &cobra.Command{
	Use:     "terms <reference.csv> <model.csv>",
	GroupID: "scoring",
	Short:   "Compare term lists from CSV files",
	Long: `Compare the term column of a model CSV file against a reference CSV file.

The term column is found by a case-insensitive match on its header (default
"term"). Terms are normalized the same way as diagram names, and the report
lists matched, extra and missing terms in their original spelling.

Examples:
  modelscore terms reference/terms.csv run_1/terms.csv
  modelscore terms reference/terms.csv run_1/terms.csv --json
  modelscore terms ref/terms.csv run/terms.csv \
      --scored-reference ref/scored_terms.csv --scored-model run/scored_terms.csv
  modelscore terms ref.csv model.csv --column name -o results.json
`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if cmd.Flags().Changed("column") {
			col, _ := cmd.Flags().GetString("column")
			config.Set("term-column", col)
		}

		run := termsRun{
			reference: args[0],
			model:     args[1],
			column:    config.GetString("term-column"),
			precision: config.GetInt("precision"),
		}
		run.scoredReference, _ = cmd.Flags().GetString("scored-reference")
		run.scoredModel, _ = cmd.Flags().GetString("scored-model")

		if err := run.validate(); err != nil {
			FatalError("%v", err)
		}
		res, err := run.execute()
		if err != nil {
			FatalError("%v", err)
		}

		if jsonOutput {
			outputJSON(res)
		} else {
			_, _ = io.WriteString(os.Stdout, report.Terms(res))
		}

		if output != "" {
			if err := saveJSON(output, res, false); err != nil {
				FatalError("%v", err)
			}
			fmt.Fprintf(os.Stderr, "\n%s Results saved to: %s\n", ui.RenderPass(ui.IconPass), output)
		}
	},
}

// scored reports whether the optional second pair was fully given.
func (r *termsRun) scored() bool {
	return r.scoredReference != "" && r.scoredModel != ""
}

func (r *termsRun) validate() error {
	if err := checkExists("Reference terms", r.reference); err != nil {
		return err
	}
	if err := checkExists("Model terms", r.model); err != nil {
		return err
	}
	if !r.scored() {
		return nil
	}
	if err := checkExists("Scored reference", r.scoredReference); err != nil {
		return err
	}
	return checkExists("Scored model", r.scoredModel)
}

func (r *termsRun) execute() (*terms.Report, error) {
	res := &terms.Report{}

	c, err := terms.CompareFiles(r.reference, r.model, "terms", r.column, r.precision)
	if err != nil {
		return nil, err
	}
	res.Comparisons = append(res.Comparisons, *c)

	if r.scored() {
		c, err := terms.CompareFiles(r.scoredReference, r.scoredModel, "scored_terms", r.column, r.precision)
		if err != nil {
			return nil, err
		}
		res.Comparisons = append(res.Comparisons, *c)
	}
	return res, nil
}

func init() {
	termsCmd.Flags().String("scored-reference", "", "Reference scored_terms.csv (optional)")
	termsCmd.Flags().String("scored-model", "", "Model scored_terms.csv (optional)")
	termsCmd.Flags().String("column", terms.DefaultColumn, "Header of the term column (case-insensitive)")
	termsCmd.Flags().StringP("output", "o", "", "Save the JSON report to this file")

	rootCmd.AddCommand(termsCmd)
}
