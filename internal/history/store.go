// Package history persists run and per-job outcome records to a SQLite
// index under the output directory, so failed items can be queried for a
// manual retry pass without parsing processing logs.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run records one pipeline invocation.
type Run struct {
	ID         string `gorm:"primaryKey"`
	Pipeline   string `gorm:"index"`
	InputDir   string
	OutputDir  string
	Workers    int
	StartedAt  time.Time
	FinishedAt *time.Time
	Total      int
	Succeeded  int
	Failed     int
}

// Entry records one job outcome within a run.
type Entry struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	RunID       string `gorm:"index"`
	Source      string
	Status      string // "OK" or "ERROR"
	Detail      string
	CompletedAt time.Time
}

// Store is the GORM-backed history index.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite index at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &Entry{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// BeginRun inserts the record for a starting run and returns it.
func (s *Store) BeginRun(pipeline, inputDir, outputDir string, workers int, startedAt time.Time) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Pipeline:  pipeline,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Workers:   workers,
		StartedAt: startedAt,
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// RecordEntry appends one job outcome.
func (s *Store) RecordEntry(e Entry) error {
	return s.db.Create(&e).Error
}

// FinishRun stores the end time and final counters for run id.
func (s *Store) FinishRun(id string, finishedAt time.Time, total, succeeded, failed int) error {
	return s.db.Model(&Run{}).Where("id = ?", id).Updates(map[string]any{
		"finished_at": finishedAt,
		"total":       total,
		"succeeded":   succeeded,
		"failed":      failed,
	}).Error
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// LatestRun returns the most recently started run, or nil when the index
// is empty.
func (s *Store) LatestRun() (*Run, error) {
	var run Run
	err := s.db.Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Failures returns the ERROR entries of run id in completion order.
func (s *Store) Failures(runID string) ([]Entry, error) {
	var entries []Entry
	err := s.db.Where("run_id = ? AND status = ?", runID, "ERROR").
		Order("completed_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
