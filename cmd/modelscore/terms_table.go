package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/manifest"
	"github.com/untoldecay/modelscore/internal/report"
	"github.com/untoldecay/modelscore/internal/terms"
)

var termsTableCmd = &cobra.Command{
	Use:     "terms-table",
	GroupID: "tables",
	Short:   "Markdown tables of every run's term files scored against a baseline",
	Long: `Score each term file of every run directory against the file of the same
name in the baseline directory, and print one Markdown table per file with a
mean row, plus an F1 summary across files.

Runs missing a file are reported with a warning and skipped.

Examples:
  modelscore terms-table --manifest batch.toml
  modelscore terms-table --baseline data/manual_baseline --runs 'data/llm-mas/run_*' \
      --files terms.csv,scored_terms.csv
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		batch, err := termsSection(cmd)
		if err != nil {
			FatalError("%v", err)
		}
		tables, err := runTermsTable(batch, os.Stderr)
		if err != nil {
			FatalError("%v", err)
		}

		if jsonOutput {
			outputJSON(tables)
			return
		}
		render, _ := cmd.Flags().GetBool("render")
		output, _ := cmd.Flags().GetString("output")
		emitMarkdown(report.TermsMarkdown(tables), render, output)
	},
}

func termsSection(cmd *cobra.Command) (*manifest.Terms, error) {
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		if m.Terms == nil {
			return nil, fmt.Errorf("%s has no [terms] section", path)
		}
		if m.Terms.Column == "" {
			m.Terms.Column = config.GetString("term-column")
		}
		return m.Terms, nil
	}

	batch := &manifest.Terms{}
	batch.Baseline, _ = cmd.Flags().GetString("baseline")
	batch.Runs, _ = cmd.Flags().GetString("runs")
	batch.Files, _ = cmd.Flags().GetStringSlice("files")
	batch.Column = config.GetString("term-column")
	if cmd.Flags().Changed("column") {
		batch.Column, _ = cmd.Flags().GetString("column")
	}
	if batch.Baseline == "" || batch.Runs == "" || len(batch.Files) == 0 {
		return nil, fmt.Errorf("either --manifest or all of --baseline, --runs and --files are required")
	}
	return batch, nil
}

// runTermsTable scores every run. Missing per-run files are warned about on
// warn; a missing baseline file is an error.
func runTermsTable(batch *manifest.Terms, warn io.Writer) ([]report.TermTable, error) {
	for _, f := range batch.Files {
		if err := checkExists("Reference", filepath.Join(batch.Baseline, f)); err != nil {
			return nil, err
		}
	}
	runs, err := manifest.Runs(batch.Runs)
	if err != nil {
		return nil, err
	}

	digits := config.GetInt("precision")
	tables := make([]report.TermTable, len(batch.Files))
	for i, f := range batch.Files {
		ref := filepath.Join(batch.Baseline, f)
		vocab, err := terms.ReadFile(ref, batch.Column)
		if err != nil {
			return nil, err
		}
		tables[i] = report.TermTable{File: f, ReferenceCount: vocab.Len()}
	}

	for _, dir := range runs {
		for i, f := range batch.Files {
			path := filepath.Join(dir, f)
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(warn, "Warning: %s not found\n", path)
				continue
			}
			c, err := terms.CompareFiles(filepath.Join(batch.Baseline, f), path, terms.FileType(f), batch.Column, digits)
			if err != nil {
				return nil, err
			}
			tables[i].Runs = append(tables[i].Runs, *c)
		}
	}
	return tables, nil
}

func init() {
	termsTableCmd.Flags().String("manifest", "", "TOML manifest with a [terms] section")
	termsTableCmd.Flags().String("baseline", "", "Directory holding the reference term files")
	termsTableCmd.Flags().String("runs", "", "Glob matching the run directories")
	termsTableCmd.Flags().StringSlice("files", []string{"terms.csv", "scored_terms.csv"}, "Term file names compared in each run")
	termsTableCmd.Flags().String("column", terms.DefaultColumn, "Header of the term column (case-insensitive)")
	termsTableCmd.Flags().Bool("render", false, "Render the Markdown for the terminal")
	termsTableCmd.Flags().StringP("output", "o", "", "Save the Markdown to this file")

	rootCmd.AddCommand(termsTableCmd)
}
