// Package cli wires the cobra command tree for the batchmill binary.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/backmassage/batchmill/internal/config"
)

// version is injected at build time via -ldflags.
var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "batchmill",
		Short: "Batch media transformation pipelines",
		Long: `Batchmill discovers media files under an input tree and runs a fixed
per-file transform on a bounded worker pool, recording every outcome in an
append-only processing log and a queryable run history.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Optional .env providing BATCHMILL_* defaults; absence is fine.
			_ = godotenv.Load()
		},
	}
	root.AddCommand(newImageCmd())
	root.AddCommand(newSignalCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

// Execute runs the CLI and returns the process exit code. Per-item job
// failures exit 0 (the processing log carries the outcomes); only fatal
// setup errors exit non-zero.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "batchmill: %v\n", err)
		return 1
	}
	return 0
}

// addCommonFlags registers the flags shared by the image and signal
// commands. Flag names follow the original tool's underscore convention.
func addCommonFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.InputDir, "input_dir", "", "directory to scan for input files")
	cmd.Flags().StringVar(&cfg.OutputDir, "output_dir", "", "directory for derived artifacts (created if absent)")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "enable debug output")
	cmd.Flags().StringVar((*string)(&cfg.ColorMode), "color", string(cfg.ColorMode), "color output: auto, always, never")
	cmd.Flags().StringVar(&cfg.LogFile, "log_file", "", "optional operator log file")
	cmd.MarkFlagRequired("input_dir")
	cmd.MarkFlagRequired("output_dir")
}
