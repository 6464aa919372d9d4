package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/backmassage/batchmill/internal/history"
	"github.com/backmassage/batchmill/internal/logging"
)

// Sink consumes the result stream: one tab-separated log entry per result,
// synced to disk individually so a crash mid-run loses nothing already
// recorded, plus one operator progress line per item and a mirror row in
// the history store. The sink is the only writer of the processing log;
// workers never touch it, so no write-side locking is needed.
//
// Entry order is completion order, not submission order.
type Sink struct {
	file  *os.File
	log   *logging.Logger
	store *history.Store // may be nil when history recording is disabled
	runID string
	stats RunStats
}

// NewSink creates (truncating) the processing log at path. total is the
// number of jobs the run will submit, used for progress reporting.
func NewSink(path string, total int, log *logging.Logger, store *history.Store, runID string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create processing log: %w", err)
	}
	return &Sink{
		file:  f,
		log:   log,
		store: store,
		runID: runID,
		stats: RunStats{Total: total},
	}, nil
}

// Record persists the log entry for one result and emits the operator
// progress line. Log format, one line per job:
//
//	<RFC3339 UTC timestamp>\t<source path>\t<OK|ERROR>\t<detail>
func (s *Sink) Record(res Result) error {
	now := time.Now().UTC()
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n", now.Format(time.RFC3339), res.Source, res.Status, res.Detail)
	if _, err := s.file.WriteString(line); err != nil {
		return fmt.Errorf("write log entry: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync processing log: %w", err)
	}

	if res.Status == StatusOK {
		s.stats.Succeeded++
		s.log.Success("[%d/%d] %s -> OK", s.stats.Done(), s.stats.Total, res.Source)
	} else {
		s.stats.Failed++
		s.log.Error("[%d/%d] %s -> ERROR: %s", s.stats.Done(), s.stats.Total, res.Source, res.Detail)
	}

	for _, a := range res.Artifacts {
		if fi, err := os.Stat(a); err == nil {
			s.stats.ArtifactBytes += fi.Size()
		}
	}

	if s.store != nil {
		err := s.store.RecordEntry(history.Entry{
			RunID:       s.runID,
			Source:      res.Source,
			Status:      string(res.Status),
			Detail:      res.Detail,
			CompletedAt: now,
		})
		if err != nil {
			// The processing log is the record of truth; a lost index row
			// is not worth aborting the drain.
			s.log.Warn("history: %v", err)
		}
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (s *Sink) Stats() RunStats {
	return s.stats
}

// Close closes the processing log file.
func (s *Sink) Close() error {
	return s.file.Close()
}
