// Command longexposure turns every video in a directory into a set of
// long-exposure stills (max, min, average, motion variance, max-minus-min)
// and moves each finished video into a processed directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/backmassage/longexposure/internal/check"
	"github.com/backmassage/longexposure/internal/config"
	"github.com/backmassage/longexposure/internal/display"
	"github.com/backmassage/longexposure/internal/logging"
	"github.com/backmassage/longexposure/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, pflag.ErrHelp) || errors.Is(err, config.ErrVersionRequested) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "longexposure: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "longexposure: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "longexposure: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner(os.Stdout)

	if cfg.CheckOnly {
		if check.RunCheck(&cfg, log) > 0 {
			return 1
		}
		return 0
	}

	// The input must exist. The output directories may not exist yet, so
	// they are compared by absolute path when they cannot be resolved.
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, resolvePath(cfg.ExposuresPath()), resolvePath(cfg.ProcessedPath())); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("=== longexposure v%s (%s) ===", version, commit)
	log.Info("In:        %s", cfg.InputDir)
	log.Info("Exposures: %s", cfg.ExposuresPath())
	log.Info("Processed: %s", cfg.ProcessedPath())
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written or moved")
	}
	log.Info("")

	// Decoding shells out to ffmpeg and ffprobe; fail fast without them.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling. Cancel on SIGINT/SIGTERM so the batch
	// stops after the current video.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current video…")
		cancel()
	}()

	// Phase 4: Analyze or run the batch.
	if cfg.Analyze {
		if pipeline.Analyze(ctx, &cfg, log) > 0 {
			return 1
		}
		return 0
	}

	stats := pipeline.Run(ctx, &cfg, log)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolvePath is absPath for paths that may not exist yet.
func resolvePath(path string) string {
	if p, err := absPath(path); err == nil {
		return p
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
