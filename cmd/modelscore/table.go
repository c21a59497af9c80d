package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/untoldecay/modelscore/internal/compare"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/manifest"
	"github.com/untoldecay/modelscore/internal/report"
	"github.com/untoldecay/modelscore/internal/ui"
)

var tableCmd = &cobra.Command{
	Use:     "table",
	GroupID: "tables",
	Short:   "Markdown tables of every run scored against a reference model",
	Long: `Score the model file of every run directory against the reference model and
print Markdown tables per element kind, each with a mean row, plus an F1
summary.

Runs are taken from a manifest ([models] section) or from flags.

Examples:
  modelscore table --manifest batch.toml
  modelscore table --reference data/manual_baseline/plantuml_agentic.puml \
      --runs 'data/llm-mas/run_*' --file plantuml_agentic.puml
  modelscore table --manifest batch.toml --render
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		batch, err := modelsSection(cmd)
		if err != nil {
			FatalError("%v", err)
		}
		res, err := runModelsTable(batch)
		if err != nil {
			FatalError("%v", err)
		}

		if jsonOutput {
			outputJSON(res)
			return
		}
		render, _ := cmd.Flags().GetBool("render")
		output, _ := cmd.Flags().GetString("output")
		emitMarkdown(report.ModelsMarkdown(res, batch.Reference), render, output)
	},
}

// modelsSection reads the [models] section of --manifest, or builds one from
// the individual flags.
func modelsSection(cmd *cobra.Command) (*manifest.Models, error) {
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		if m.Models == nil {
			return nil, fmt.Errorf("%s has no [models] section", path)
		}
		return m.Models, nil
	}

	batch := &manifest.Models{}
	batch.Reference, _ = cmd.Flags().GetString("reference")
	batch.Runs, _ = cmd.Flags().GetString("runs")
	batch.File, _ = cmd.Flags().GetString("file")
	if batch.Reference == "" || batch.Runs == "" || batch.File == "" {
		return nil, fmt.Errorf("either --manifest or all of --reference, --runs and --file are required")
	}
	return batch, nil
}

func runModelsTable(batch *manifest.Models) (*compare.Report, error) {
	paths, err := batch.ModelPaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no run directories match %s", batch.Runs)
	}

	run := compareRun{
		reference: batch.Reference,
		models:    paths,
		opts: compare.Options{
			Workers:   config.GetInt("workers"),
			Precision: config.GetInt("precision"),
		},
	}
	if err := run.validate(); err != nil {
		return nil, err
	}

	reference, err := compare.ReadDocument(run.reference)
	if err != nil {
		return nil, err
	}
	candidates := make([]compare.Document, len(paths))
	for i, p := range paths {
		if candidates[i], err = compare.ReadDocument(p); err != nil {
			return nil, err
		}
	}
	return compare.Models(rootCtx, reference, candidates, run.opts)
}

// emitMarkdown prints md raw or rendered for the terminal, and saves the
// raw Markdown when output is set.
func emitMarkdown(md string, render bool, output string) {
	if render {
		_, _ = io.WriteString(os.Stdout, ui.RenderMarkdown(md))
	} else {
		_, _ = io.WriteString(os.Stdout, md)
	}

	if output == "" {
		return
	}
	if err := saveFile(output, []byte(md), false); err != nil {
		FatalError("%v", err)
	}
	fmt.Fprintf(os.Stderr, "\n%s Table saved to: %s\n", ui.RenderPass(ui.IconPass), filepath.Clean(output))
}

func init() {
	tableCmd.Flags().String("manifest", "", "TOML manifest with a [models] section")
	tableCmd.Flags().String("reference", "", "Reference PlantUML model")
	tableCmd.Flags().String("runs", "", "Glob matching the run directories")
	tableCmd.Flags().String("file", "", "Model file name inside each run directory")
	tableCmd.Flags().Bool("render", false, "Render the Markdown for the terminal")
	tableCmd.Flags().StringP("output", "o", "", "Save the Markdown to this file")

	rootCmd.AddCommand(tableCmd)
}
