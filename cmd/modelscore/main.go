package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/untoldecay/modelscore/internal/config"
	"github.com/untoldecay/modelscore/internal/debug"
	"github.com/untoldecay/modelscore/internal/ui"
)

var (
	configFile string
	jsonOutput bool
	noColor    bool
	debugFlag  bool
	logFile    string

	// rootCtx is cancelled on SIGINT/SIGTERM.
	rootCtx    = context.Background()
	rootCancel context.CancelFunc = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "modelscore",
	Short: "Score extracted diagram models and term lists against a reference",
	Long: `modelscore extracts entities, typed relationships and attributes from
PlantUML class diagrams (or terms from CSV files), normalizes their names and
reports precision, recall and F1 of one or more candidates against a reference.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(configFile); err != nil {
			return err
		}

		// Explicit flags win over config file and environment
		flags := cmd.Flags()
		if flags.Changed("json") {
			config.Set("json", jsonOutput)
		}
		if flags.Changed("no-color") {
			config.Set("no-color", noColor)
		}
		if flags.Changed("log-file") {
			config.Set("log-file", logFile)
		}
		jsonOutput = config.GetBool("json")

		if debugFlag {
			debug.Enable(true)
		}
		if path := config.GetString("log-file"); path != "" {
			if err := debug.SetLogFile(path); err != nil {
				return err
			}
		}
		ui.ApplyColorProfile(config.GetBool("no-color"))

		rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		debug.Logf("running %s (config: %q)", cmd.CommandPath(), config.ConfigFileUsed())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		rootCancel()
		_ = debug.Close()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "scoring", Title: "Scoring:"},
		&cobra.Group{ID: "tables", Title: "Aggregation tables:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default: .modelscore/config.yaml, then user config dir)")
	pf.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&debugFlag, "debug", false, "Print debug diagnostics to stderr")
	pf.StringVar(&logFile, "log-file", "", "Write debug diagnostics to a rotated log file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
