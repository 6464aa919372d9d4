package config

import (
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/images", "/data/images"},
		{"single trailing slash", "/data/images/", "/data/images"},
		{"multiple trailing slashes", "/data/images///", "/data/images"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/in"
			cfg.OutputDir = "/out"
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NumericFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero max_dim", func(c *Config) { c.MaxDim = 0 }, true},
		{"zero ds_rate", func(c *Config) { c.DownsampleRate = 0 }, true},
		{"zero sample_rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"single worker", func(c *Config) { c.Workers = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/in"
			cfg.OutputDir = "/out"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when paths are empty")
	}

	cfg.InputDir = "/in"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when output_dir is empty")
	}

	cfg.OutputDir = "/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		wantErr bool
	}{
		{"disjoint paths", "/data/in", "/data/out", false},
		{"output equals input", "/data/in", "/data/in", true},
		{"output inside input", "/data/in", "/data/in/derived", true},
		{"output deep inside input", "/data/in", "/data/in/a/b/c", true},
		{"sibling with common prefix", "/data/in", "/data/input2", false},
		{"input inside output", "/data/out/in", "/data/out", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.input, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v", tt.input, tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BATCHMILL_WORKERS", "8")
	t.Setenv("BATCHMILL_MAX_DIM", "512")
	t.Setenv("BATCHMILL_COLOR", "never")

	cfg := DefaultConfig()
	cfg.ApplyEnv(func(string) bool { return false })

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.MaxDim != 512 {
		t.Errorf("MaxDim = %d, want 512", cfg.MaxDim)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	// Untouched fields keep their defaults.
	if cfg.DownsampleRate != 1000 {
		t.Errorf("DownsampleRate = %d, want 1000", cfg.DownsampleRate)
	}
}

func TestApplyEnv_FlagsWin(t *testing.T) {
	t.Setenv("BATCHMILL_WORKERS", "8")

	cfg := DefaultConfig()
	cfg.Workers = 2 // pretend --workers 2 was given
	cfg.ApplyEnv(func(name string) bool { return name == "workers" })

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (explicit flag beats env)", cfg.Workers)
	}
}

func TestApplyEnv_IgnoresMalformed(t *testing.T) {
	t.Setenv("BATCHMILL_WORKERS", "lots")

	cfg := DefaultConfig()
	cfg.ApplyEnv(func(string) bool { return false })

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want default 4 for malformed env value", cfg.Workers)
	}
}
