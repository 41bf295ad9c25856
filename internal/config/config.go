// Package config holds runtime configuration: defaults, CLI flag parsing, an
// optional YAML config file, and validation. Defaults reproduce the plain
// "drop videos next to the script and run it" workflow.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultExtensions is the recognized set of video container extensions.
var DefaultExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Paths. ExposuresDir and ProcessedDir are resolved against InputDir
	// unless absolute.
	InputDir     string // Default: "." (positional arg).
	ExposuresDir string // Default: "exposures".
	ProcessedDir string // Default: "processed".
	ConfigFile   string // Optional YAML file (--config).

	// Discovery.
	Extensions []string // Default: DefaultExtensions. Lowercase, leading dot.

	// Behavior flags.
	DryRun        bool // Open and report each video; write and move nothing.
	Analyze       bool // Print an inventory table of candidates and exit.
	MotionProfile bool // Also chart per-frame motion (<base>_motion_profile.png).

	// Display and logging.
	Verbose       bool
	ProgressEvery int       // Default: 50 frames per progress line (non-TTY).
	ColorMode     ColorMode // Default: "auto".
	LogFile       string    // Optional log file path.
	CheckOnly     bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)
	return Config{
		InputDir:      ".",
		ExposuresDir:  "exposures",
		ProcessedDir:  "processed",
		Extensions:    exts,
		ProgressEvery: 50,
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtensions lowercases each extension and adds the leading dot
// when missing. Empty entries are dropped and duplicates collapsed.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Validate checks enum fields and numeric ranges and canonicalizes the
// extension list. When not in CheckOnly mode it also requires an input
// directory and two distinct output directory names.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.ProgressEvery <= 0 {
		return fmt.Errorf("progress interval must be positive (got %d)", c.ProgressEvery)
	}

	c.Extensions = NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		return errors.New("at least one video extension is required")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("input directory must not be empty")
	}
	if c.ExposuresDir == "" || c.ProcessedDir == "" {
		return errors.New("exposures and processed directories must not be empty")
	}
	return nil
}

// ExposuresPath returns the output directory for still images.
func (c *Config) ExposuresPath() string {
	return c.resolve(c.ExposuresDir)
}

// ProcessedPath returns the directory processed videos are moved into.
func (c *Config) ProcessedPath() string {
	return c.resolve(c.ProcessedDir)
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.InputDir, dir)
}

// ValidatePaths checks the resolved directory layout. Discovery is a flat
// scan of the input directory, so a processed directory equal to the input
// would make relocation a no-op and reprocess the same videos forever.
// All arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, exposuresAbs, processedAbs string) error {
	if processedAbs == inputAbs {
		return errors.New("processed directory must not be the input directory")
	}
	if exposuresAbs == processedAbs {
		return errors.New("exposures and processed directories must differ")
	}
	return nil
}
