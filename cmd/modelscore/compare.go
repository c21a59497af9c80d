package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untoldecay/modelscore/internal/compare"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/report"
	"github.com/untoldecay/modelscore/internal/ui"
)

type compareRun struct {
	reference string
	models    []string
	output    string
	format    report.Format
	verbose   bool
	opts      compare.Options

	// saved is set once output has been written, so watch reruns replace
	// it without asking again.
	saved bool
}

var compareCmd = &cobra.Command{
	Use:     "compare <reference.puml> <model.puml>...",
	GroupID: "scoring",
	Short:   "Compare PlantUML models against a reference model",
	Long: `Compare one or more PlantUML class diagrams against a reference diagram.

Classes, relationships and attributes are extracted from each file, names are
normalized (case, whitespace and underscores are ignored), and precision,
recall and F1 are reported per element kind and overall.

Examples:
  modelscore compare reference.puml model1.puml model2.puml
  modelscore compare reference.puml model.puml -o results.json
  modelscore compare reference.puml model.puml --verbose
  modelscore compare reference.puml model.puml --format yaml
  modelscore compare reference.puml run_*/model.puml --watch
`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")
		watch, _ := cmd.Flags().GetBool("watch")

		if cmd.Flags().Changed("format") {
			f, _ := cmd.Flags().GetString("format")
			config.Set("format", f)
		}
		if cmd.Flags().Changed("workers") {
			n, _ := cmd.Flags().GetInt("workers")
			config.Set("workers", n)
		}

		format, err := report.ParseFormat(config.GetString("format"))
		if err != nil {
			FatalError("%v", err)
		}
		if jsonOutput {
			format = report.FormatJSON
		}

		run := compareRun{
			reference: args[0],
			models:    args[1:],
			output:    output,
			format:    format,
			verbose:   verbose,
			opts: compare.Options{
				Workers:    config.GetInt("workers"),
				Precision:  config.GetInt("precision"),
				NearMisses: verbose,
			},
		}

		if err := run.validate(); err != nil {
			FatalError("%v", err)
		}
		if !watch {
			if err := run.execute(rootCtx, os.Stdout); err != nil {
				FatalError("%v", err)
			}
			return
		}

		paths := append([]string{run.reference}, run.models...)
		err = watchFiles(rootCtx, paths, config.GetDuration("watch.debounce"), func() {
			if err := run.execute(rootCtx, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		})
		if err != nil {
			FatalError("%v", err)
		}
	},
}

// validate checks every input exists before anything is extracted.
func (r *compareRun) validate() error {
	if err := checkExists("Reference", r.reference); err != nil {
		return err
	}
	return checkExists("Model", r.models...)
}

func (r *compareRun) execute(ctx context.Context, w io.Writer) error {
	reference, err := compare.ReadDocument(r.reference)
	if err != nil {
		return err
	}
	candidates := make([]compare.Document, 0, len(r.models))
	for _, p := range r.models {
		doc, err := compare.ReadDocument(p)
		if err != nil {
			return err
		}
		candidates = append(candidates, doc)
	}

	if r.format == report.FormatText {
		fmt.Fprintf(w, "Comparing %d model(s) against reference...\n\n", len(candidates))
	}
	res, err := compare.Models(ctx, reference, candidates, r.opts)
	if err != nil {
		return err
	}

	switch r.format {
	case report.FormatJSON:
		err = report.WriteJSON(w, res)
	case report.FormatYAML:
		err = report.WriteYAML(w, res)
	default:
		_, err = io.WriteString(w, report.Models(res, r.verbose))
	}
	if err != nil {
		return err
	}

	if r.output != "" {
		if err := saveJSON(r.output, res, r.saved); err != nil {
			return err
		}
		r.saved = true
		fmt.Fprintf(os.Stderr, "\n%s Results saved to: %s\n", ui.RenderPass(ui.IconPass), r.output)
	}
	return nil
}

func init() {
	compareCmd.Flags().StringP("output", "o", "", "Save the JSON report to this file")
	compareCmd.Flags().BoolP("verbose", "v", false, "Show itemized differences and possible spelling variants")
	compareCmd.Flags().String("format", "text", "Output format: text, json or yaml")
	compareCmd.Flags().Bool("watch", false, "Re-run the comparison whenever an input file changes")
	compareCmd.Flags().Int("workers", 4, "Number of candidates scored concurrently")

	rootCmd.AddCommand(compareCmd)
}
