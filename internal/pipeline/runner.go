package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/batchmill/internal/config"
	"github.com/backmassage/batchmill/internal/display"
	"github.com/backmassage/batchmill/internal/history"
	"github.com/backmassage/batchmill/internal/logging"
)

// Pipeline bundles what distinguishes the image and signal runs: a name for
// reporting, the recognized input extensions, and the per-file transform.
type Pipeline struct {
	Name       string
	Extensions map[string]bool
	Transform  Transform
}

// Run executes one batch: discover → submit → drain → summarize. The
// returned error is reserved for fatal setup conditions (unreadable input
// tree, unwritable output, broken history store) — all of which occur
// before any job is submitted. Per-file failures are reported through the
// processing log and the returned stats instead, and never abort the run.
//
// An empty discovery is not an error: the pool is never created and the
// run exits cleanly with zero work.
func Run(cfg *config.Config, log *logging.Logger, pl Pipeline) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.InputDir, pl.Extensions)
	if err != nil {
		return stats, fmt.Errorf("discover input files: %w", err)
	}
	if len(files) == 0 {
		log.Warn("No %s files found in %s", pl.Name, cfg.InputDir)
		return stats, nil
	}
	stats.Total = len(files)

	logDir := filepath.Join(cfg.OutputDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return stats, fmt.Errorf("create log directory: %w", err)
	}

	store, err := history.Open(filepath.Join(logDir, "history.db"))
	if err != nil {
		return stats, fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	started := time.Now().UTC()
	run, err := store.BeginRun(pl.Name, cfg.InputDir, cfg.OutputDir, cfg.Workers, started)
	if err != nil {
		return stats, fmt.Errorf("record run start: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("processing_log_%s.txt", started.Format("20060102T150405Z")))
	sink, err := NewSink(logPath, stats.Total, log, store, run.ID)
	if err != nil {
		return stats, err
	}

	log.Info("Found %d %s files", stats.Total, pl.Name)
	log.Info("Workers: %d", cfg.Workers)
	log.Info("Processing log: %s", logPath)
	log.Info("")

	// Fan-out: every discovered file becomes exactly one job. The queue is
	// sized to hold the whole batch, so submission never blocks.
	pool := NewPool(cfg.Workers, stats.Total, pl.Transform)
	resolver := NewStemResolver()
	for _, path := range files {
		pool.Submit(Job{
			Source:    path,
			Stem:      resolver.Resolve(path),
			OutputDir: cfg.OutputDir,
			Params: Params{
				MaxDim:         cfg.MaxDim,
				DownsampleRate: cfg.DownsampleRate,
				SampleRate:     cfg.SampleRate,
			},
		})
	}
	pool.Close()

	// Fan-in: drain every result. A failed log write is reported but the
	// drain continues — every submitted job must still be consumed.
	for res := range pool.Results() {
		if err := sink.Record(res); err != nil {
			log.Error("%v", err)
		}
	}
	if err := sink.Close(); err != nil {
		log.Warn("close processing log: %v", err)
	}
	stats = sink.Stats()

	if err := store.FinishRun(run.ID, time.Now().UTC(), stats.Total, stats.Succeeded, stats.Failed); err != nil {
		log.Warn("history: %v", err)
	}

	log.Info("==============================")
	log.Info("Done: %d ok, %d failed", stats.Succeeded, stats.Failed)
	log.Info("Artifacts written: %s", display.FormatBytes(stats.ArtifactBytes))
	log.Info("Processing log: %s", logPath)
	return stats, nil
}
