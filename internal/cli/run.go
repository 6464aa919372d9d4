package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/batchmill/internal/config"
	"github.com/backmassage/batchmill/internal/display"
	"github.com/backmassage/batchmill/internal/logging"
	"github.com/backmassage/batchmill/internal/pipeline"
)

// runPipeline is the shared image/signal command body: finalize config,
// validate paths, build the logger, run the batch.
func runPipeline(cmd *cobra.Command, cfg *config.Config, pl pipeline.Pipeline) error {
	cfg.ApplyEnv(cmd.Flags().Changed)
	cfg.InputDir = config.NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = config.NormalizeDirArg(cfg.OutputDir)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	// Resolve and validate paths: input must exist, output is created if
	// needed, and output must not be inside input (prevents the pipeline
	// discovering its own artifacts).
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("input not found: %s", cfg.InputDir)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %s", cfg.OutputDir)
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output path: %s", cfg.OutputDir)
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		return err
	}

	log.Info("=== Batchmill v%s — %s pipeline ===", version, pl.Name)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)
	log.Info("")

	_, err = pipeline.Run(cfg, log, pl)
	return err
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
