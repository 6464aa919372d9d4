package pipeline

import (
	"fmt"
	"strings"
)

// Params carries the numeric knobs a transform may need. Each pipeline reads
// only the fields it cares about.
type Params struct {
	MaxDim         int // Longest edge of resized images.
	DownsampleRate int // Target rate of the downsampled waveform CSV.
	SampleRate     int // Assumed rate for CSV waveform inputs.
}

// Job is one unit of work: a single input file plus everything needed to
// derive its artifacts. Jobs are immutable after submission; the pool owns
// them until the matching Result arrives.
type Job struct {
	Source    string // Input file path.
	Stem      string // Collision-resolved artifact base name (no extension).
	OutputDir string
	Params    Params
}

// Status classifies the outcome of one job.
type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

// Result is the single outcome of one job. Detail holds the produced
// artifact paths on success or the error message on failure.
type Result struct {
	Source    string
	Status    Status
	Detail    string
	Artifacts []string
}

// Transform converts one input file into derived artifacts. Implementations
// must catch every failure and return it as an ERROR result — nothing may
// error or panic past this boundary. The pool still recovers panics as a
// second line of defense.
type Transform func(Job) Result

// OK builds a success result for job from the artifact paths written.
func OK(job Job, artifacts ...string) Result {
	return Result{
		Source:    job.Source,
		Status:    StatusOK,
		Detail:    strings.Join(artifacts, ", "),
		Artifacts: artifacts,
	}
}

// Errorf builds a failure result for job.
func Errorf(job Job, format string, args ...interface{}) Result {
	return Result{
		Source: job.Source,
		Status: StatusError,
		Detail: fmt.Sprintf(format, args...),
	}
}
