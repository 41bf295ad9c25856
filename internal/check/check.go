// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps). Decoding shells out to ffmpeg and reads
// container metadata through ffprobe, so both must be on PATH.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/longexposure/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// lookPath and output are swapped in tests.
var (
	lookPath = exec.LookPath
	output   = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
)

// RunCheck runs the interactive --check flow: tool versions, the rawvideo
// output the decoder pipes frames through, and the configured directories. It is informational only and never stops on a
// failure. It returns the number of failed checks.
func RunCheck(cfg *config.Config, log Logger) int {
	log.Info("=== System Check ===")

	failed := 0
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if !checkTool(log, tool) {
			failed++
		}
	}
	if !checkRawVideo(log, cfg.Verbose) {
		failed++
	}

	log.Info("Extensions: %s", strings.Join(cfg.Extensions, " "))
	log.Info("Exposures:  %s", cfg.ExposuresPath())
	log.Info("Processed:  %s", cfg.ProcessedPath())
	if cfg.ConfigFile != "" {
		log.Info("Config:     %s", cfg.ConfigFile)
	}
	return failed
}

// checkTool verifies name is on PATH and logs its version string.
func checkTool(log Logger, name string) bool {
	if _, err := lookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	out, err := output(name, "-version")
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	log.Success("%s: %s", name, firstLine(string(out)))
	return true
}

// checkRawVideo confirms ffmpeg can emit the raw RGBA stream frames are
// read from.
func checkRawVideo(log Logger, verbose bool) bool {
	if _, err := lookPath("ffmpeg"); err != nil {
		return false
	}
	log.Info("Testing rawvideo output...")
	out, err := output("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=16x16:d=0.1",
		"-pix_fmt", "rgba", "-f", "rawvideo", "-",
	)
	if err != nil {
		log.Error("ffmpeg rawvideo test failed: %v", err)
		return false
	}
	log.Debug(verbose, "  rawvideo test produced %d bytes", len(out))
	log.Success("rawvideo RGBA output works")
	return true
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe are on PATH. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := lookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := lookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
