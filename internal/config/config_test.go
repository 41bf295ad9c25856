package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/clips", "/media/clips"},
		{"single trailing slash", "/media/clips/", "/media/clips"},
		{"multiple trailing slashes", "/media/clips///", "/media/clips"},
		{"root path", "/", "/"},
		{"relative path", "clips", "clips"},
		{"current dir", ".", "."},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"MP4", ".Mov", " .mkv ", "", "mp4", ".avi"})
	assert.Equal(t, []string{".mp4", ".mov", ".mkv", ".avi"}, got)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.InputDir)
	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.Equal(t, 50, cfg.ProgressEvery)
	require.NoError(t, cfg.Validate())

	// The default slice must not alias the package-level one.
	cfg.Extensions[0] = ".webm"
	assert.Equal(t, ".mp4", DefaultExtensions[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"unknown color mode", func(c *Config) { c.ColorMode = "sometimes" }, true},
		{"zero progress interval", func(c *Config) { c.ProgressEvery = 0 }, true},
		{"no extensions", func(c *Config) { c.Extensions = []string{" ", ""} }, true},
		{"empty input dir", func(c *Config) { c.InputDir = "" }, true},
		{"empty exposures dir", func(c *Config) { c.ExposuresDir = "" }, true},
		{"check only skips paths", func(c *Config) { c.CheckOnly = true; c.InputDir = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolvedPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/videos"
	assert.Equal(t, "/videos/exposures", cfg.ExposuresPath())
	assert.Equal(t, "/videos/processed", cfg.ProcessedPath())

	cfg.ProcessedDir = "/archive/done"
	assert.Equal(t, "/archive/done", cfg.ProcessedPath())
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.ValidatePaths("/in", "/in/exposures", "/in/processed"))
	assert.Error(t, cfg.ValidatePaths("/in", "/in/exposures", "/in"))
	assert.Error(t, cfg.ValidatePaths("/in", "/in/out", "/in/out"))
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{
		"-e", "stills", "--processed=done", "--ext", ".mp4,.webm",
		"--dry-run", "--no-color", "-v", "--progress-every", "10", "clips/",
	}, "test")
	require.NoError(t, err)

	assert.Equal(t, "clips", cfg.InputDir)
	assert.Equal(t, "stills", cfg.ExposuresDir)
	assert.Equal(t, "done", cfg.ProcessedDir)
	assert.Equal(t, []string{".mp4", ".webm"}, cfg.Extensions)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, 10, cfg.ProgressEvery)
}

func TestParseFlags_NoArgsUsesCurrentDir(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, nil, "test"))
	assert.Equal(t, ".", cfg.InputDir)
}

func TestParseFlags_TooManyPositionals(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"a", "b"}, "test"))
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParseFlags(&cfg, []string{"--bogus"}, "test"))
}

func TestParseFlags_Help(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, []string{"--help"}, "test")
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestParseFlags_ConfigFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "longexposure.yaml")
	writeFile(t, path, `
exposures: out
processed: archive
extensions: [webm]
progress_every: 25
motion_profile: true
color: always
`)

	cfg := DefaultConfig()
	require.NoError(t, ParseFlags(&cfg, []string{"--config", path, "--processed", "moved"}, "test"))

	assert.Equal(t, "out", cfg.ExposuresDir)
	assert.Equal(t, "moved", cfg.ProcessedDir, "flag must override file")
	assert.Equal(t, []string{"webm"}, cfg.Extensions)
	assert.Equal(t, 25, cfg.ProgressEvery)
	assert.True(t, cfg.MotionProfile)
	assert.Equal(t, ColorAlways, cfg.ColorMode)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()

	assert.Error(t, LoadFile(&cfg, filepath.Join(dir, "missing.yaml")))

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "exposure: typo\n")
	assert.Error(t, LoadFile(&cfg, bad), "unknown keys are rejected")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
