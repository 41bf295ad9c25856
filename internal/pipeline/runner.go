package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	ansi "github.com/k0kubun/go-ansi"

	"github.com/backmassage/longexposure/internal/accumulate"
	"github.com/backmassage/longexposure/internal/config"
	"github.com/backmassage/longexposure/internal/display"
	"github.com/backmassage/longexposure/internal/finalize"
	"github.com/backmassage/longexposure/internal/frame"
	"github.com/backmassage/longexposure/internal/logging"
	"github.com/backmassage/longexposure/internal/output"
	"github.com/backmassage/longexposure/internal/source"
	"github.com/backmassage/longexposure/internal/term"
)

// runner carries the collaborators for one batch. Tests swap open and
// write for fakes.
type runner struct {
	id    string // Batch ID, tags the log lines of one run.
	cfg   *config.Config
	log   *logging.Logger
	open  func(path string) (*source.Source, error)
	write func(dir, base string, r finalize.Result) ([]string, error)
	out   io.Writer
	isTTY bool
}

func newRunner(cfg *config.Config, log *logging.Logger) *runner {
	return &runner{
		id:    uuid.NewString(),
		cfg:   cfg,
		log:   log,
		open:  source.Open,
		write: output.WriteSet,
		out:   ansi.NewAnsiStdout(),
		isTTY: term.IsTerminal(os.Stdout),
	}
}

// Run is the top-level batch entry point. It discovers videos, processes
// each one sequentially, and returns aggregate stats. Cancellation is
// checked between videos; a video already streaming runs to completion.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	return newRunner(cfg, log).run(ctx)
}

func (r *runner) run(ctx context.Context) RunStats {
	var stats RunStats

	files, err := Discover(r.cfg.InputDir, r.cfg.Extensions)
	if err != nil {
		r.log.Error("File discovery failed: %v", err)
		stats.Failed = 1
		return stats
	}
	stats.Total = len(files)
	if stats.Total == 0 {
		r.log.Warn("No video files found in %s (extensions: %s)",
			r.cfg.InputDir, strings.Join(r.cfg.Extensions, " "))
		return stats
	}

	if !r.cfg.DryRun {
		for _, dir := range []string{r.cfg.ExposuresPath(), r.cfg.ProcessedPath()} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				r.log.Error("Cannot create directory: %v", err)
				stats.Failed = stats.Total
				return stats
			}
		}
	}

	r.log.Info("Batch %s: found %d video files", r.id, stats.Total)
	fmt.Fprintln(r.out)

	for i, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted, %d video(s) left unprocessed", stats.Total-i)
			break
		}
		stats.Current = i + 1
		r.processFile(path, &stats)
		fmt.Fprintln(r.out)
	}

	printSummary(r.out, &stats, r.cfg.DryRun)
	return stats
}

// job is one video moving through the state machine.
type job struct {
	path  string
	name  string // Basename including extension.
	stem  string // Basename without extension; prefix of every still.
	state State
	size  int64
}

func (r *runner) advance(j *job, to State) {
	if !CanTransition(j.state, to) {
		panic(fmt.Sprintf("pipeline: illegal transition %s -> %s for %s", j.state, to, j.name))
	}
	r.log.Debug(r.cfg.Verbose, "  %s: %s -> %s", j.name, j.state, to)
	j.state = to
}

func (r *runner) fail(j *job, stats *RunStats, err error) {
	r.advance(j, StateFailed)
	r.log.Error("%s: %s", failureReason(err), j.name)
	r.log.Debug(r.cfg.Verbose, "  %v", err)
	r.log.Warn("  Left in place: %s", j.path)
	stats.Failed++
}

// failureReason maps the per-video error classes onto a short label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, source.ErrOpen):
		return "Failed to open"
	case errors.Is(err, source.ErrEmptyStream):
		return "No frames in"
	case errors.Is(err, source.ErrDecode):
		return "Decode error in"
	case errors.Is(err, accumulate.ErrDimensionMismatch):
		return "Frame size changed mid-stream in"
	case errors.Is(err, output.ErrWrite):
		return "Cannot write exposures for"
	default:
		return "Failed"
	}
}

// processFile handles one video: open → stream → finalize → write → relocate.
func (r *runner) processFile(path string, stats *RunStats) {
	name := filepath.Base(path)
	j := &job{
		path: path,
		name: name,
		stem: strings.TrimSuffix(name, filepath.Ext(name)),
	}
	r.log.Info("[%d/%d] Processing video: %s", stats.Current, stats.Total, name)

	if fi, err := os.Stat(path); err == nil {
		j.size = fi.Size()
	}

	// --- Open ---
	src, err := r.open(path)
	if err != nil {
		r.fail(j, stats, err)
		return
	}
	r.advance(j, StateOpened)
	info := src.Info()
	r.log.Info("  Video: %dx%d | %.2f fps | %s | %s",
		info.Width, info.Height, info.FPS, info.Codec, display.FormatBytes(j.size))
	r.log.Info("  Frame count: %d", info.Frames)

	// --- Dry-run ---
	if r.cfg.DryRun {
		src.Close()
		r.log.Success("[DRY] Would write %d exposures to %s and move to %s",
			len(output.Names(j.stem)), r.cfg.ExposuresPath(), r.cfg.ProcessedPath())
		stats.Processed++
		return
	}

	// --- Stream ---
	r.advance(j, StateStreaming)
	start := time.Now()
	var (
		bank   *accumulate.Bank
		series []float64
	)
	prog := newFrameProgress(r.out, r.isTTY, info.Frames, r.cfg.ProgressEvery, r.log)
	n, err := src.Each(func(i int, f frame.Frame) error {
		if bank == nil {
			bank = accumulate.Seed(f)
		} else {
			if err := bank.Update(f); err != nil {
				return err
			}
			if r.cfg.MotionProfile {
				series = append(series, bank.LastMotion())
			}
		}
		prog.Set(i + 1)
		return nil
	})
	prog.Finish()
	if err != nil {
		r.fail(j, stats, err)
		return
	}

	// --- Finalize and write ---
	r.log.Info("  Averaging %d frames...", n)
	result := finalize.Finalize(bank)
	written, err := r.write(r.cfg.ExposuresPath(), j.stem, result)
	if err != nil {
		r.fail(j, stats, err)
		return
	}
	r.advance(j, StateFinalized)
	for _, p := range written {
		r.log.Debug(r.cfg.Verbose, "  Saved %s", p)
	}
	r.log.Info("  Saved %d exposures to %s", len(written), r.cfg.ExposuresPath())

	if r.cfg.MotionProfile {
		written = append(written, r.writeProfile(j, series)...)
	}

	// --- Relocate ---
	dst, err := relocate(path, r.cfg.ProcessedPath())
	if err != nil {
		r.fail(j, stats, fmt.Errorf("move to processed: %w", err))
		return
	}
	r.advance(j, StateRelocated)

	stats.Processed++
	stats.Frames += int64(n)
	stats.InputBytes += j.size
	stats.OutputBytes += totalSize(written)
	r.log.Success("Done in %s (%d frames); moved to %s",
		time.Since(start).Round(time.Millisecond), n, dst)
}

// writeProfile renders the optional motion chart. A failure here is only
// a warning: the five stills are already in place.
func (r *runner) writeProfile(j *job, series []float64) []string {
	if len(series) == 0 {
		r.log.Debug(r.cfg.Verbose, "  Motion profile skipped: single frame")
		return nil
	}
	p, err := output.WriteMotionProfile(r.cfg.ExposuresPath(), j.stem, series)
	if err != nil {
		r.log.Warn("  Motion profile not written: %v", err)
		return nil
	}
	r.log.Info("  Saved motion profile to %s", p)
	return []string{p}
}

func totalSize(paths []string) int64 {
	var n int64
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			n += fi.Size()
		}
	}
	return n
}
