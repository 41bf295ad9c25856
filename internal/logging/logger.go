// Package logging provides the leveled console logger used by every stage
// of the batch: timestamped "[LEVEL]" lines, colored by level when colors
// are enabled, with an optional append-only plain-text file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/backmassage/longexposure/internal/config"
	"github.com/backmassage/longexposure/internal/term"
)

// Level tag styles. fatih/color returns the plain text when color.NoColor is set.
var (
	infoTag    = color.New(color.FgHiBlue, color.Bold).SprintFunc()
	successTag = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	warnTag    = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	errorTag   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	outlierTag = color.New(color.FgHiMagenta, color.Bold).SprintFunc()
	debugTag   = color.New(color.FgHiCyan, color.Bold).SprintFunc()
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu       sync.Mutex
	stdout   io.Writer
	stderr   io.Writer
	file     *os.File
	filePath string
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{stdout: os.Stdout, stderr: os.Stderr}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

// NewWriterLogger returns a Logger that writes all levels to w. Used by
// tests and by callers that capture output.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{stdout: w, stderr: w}
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, tag func(a ...interface{}) string, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.stdout
	if level == "ERROR" {
		out = l.stderr
	}
	_, _ = io.WriteString(out, ts+" "+tag("["+level+"]")+" "+text+"\n")
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" ["+level+"] "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoTag, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", successTag, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnTag, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorTag, fmt.Sprintf(format, args...))
}

// Outlier logs at OUTLIER level (magenta).
func (l *Logger) Outlier(format string, args ...interface{}) {
	l.line("OUTLIER", outlierTag, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", debugTag, fmt.Sprintf(format, args...))
}
