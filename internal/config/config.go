// Package config holds runtime configuration: defaults, environment
// overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overridden from BATCHMILL_* environment variables via
// [Config.ApplyEnv], and then mutated by the CLI flag layer before being
// passed (by pointer) to the packages that need it.
type Config struct {
	// Paths.
	InputDir  string
	OutputDir string

	// Shared pipeline settings.
	Workers int // Default: 4. Parallel worker count.

	// Image pipeline.
	MaxDim int // Default: 1024. Longest edge of the resized output in pixels.

	// Signal pipeline.
	DownsampleRate int // Default: 1000. Target rate of the waveform CSV in samples/sec.
	SampleRate     int // Default: 44100. Assumed rate for CSV inputs (frequency-axis scaling only).

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional operator log file (distinct from the processing log).
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// env and CLI overrides are applied.
func DefaultConfig() Config {
	return Config{
		Workers:        4,
		MaxDim:         1024,
		DownsampleRate: 1000,
		SampleRate:     44100,
		ColorMode:      ColorAuto,
	}
}

// ApplyEnv overrides cfg fields from BATCHMILL_* environment variables.
// flagSet reports whether the named CLI flag was given explicitly; explicit
// flags always win over the environment.
func (c *Config) ApplyEnv(flagSet func(name string) bool) {
	if v, ok := envInt("BATCHMILL_WORKERS"); ok && !flagSet("workers") {
		c.Workers = v
	}
	if v, ok := envInt("BATCHMILL_MAX_DIM"); ok && !flagSet("max_dim") {
		c.MaxDim = v
	}
	if v, ok := envInt("BATCHMILL_DS_RATE"); ok && !flagSet("ds_rate") {
		c.DownsampleRate = v
	}
	if v, ok := envInt("BATCHMILL_SAMPLE_RATE"); ok && !flagSet("sample_rate") {
		c.SampleRate = v
	}
	if v := os.Getenv("BATCHMILL_COLOR"); v != "" && !flagSet("color") {
		c.ColorMode = ColorMode(v)
	}
	if v := os.Getenv("BATCHMILL_LOG_FILE"); v != "" && !flagSet("log_file") {
		c.LogFile = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that numeric fields are positive, the color mode is a
// known value, and both directory paths were supplied.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive (got %d)", c.Workers)
	}
	if c.MaxDim <= 0 {
		return fmt.Errorf("max_dim must be positive (got %d)", c.MaxDim)
	}
	if c.DownsampleRate <= 0 {
		return fmt.Errorf("ds_rate must be positive (got %d)", c.DownsampleRate)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive (got %d)", c.SampleRate)
	}

	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need both --input_dir and --output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents the pipeline from
// recursively discovering its own artifacts. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
