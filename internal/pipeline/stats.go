package pipeline

import (
	"fmt"
	"io"

	"github.com/mitchellh/colorstring"

	"github.com/backmassage/longexposure/internal/display"
	"github.com/backmassage/longexposure/internal/term"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total       int   // Videos discovered.
	Current     int   // 1-based index of the video being handled.
	Processed   int   // Videos relocated (or, in a dry run, opened).
	Failed      int   // Videos left in place because of an error.
	Frames      int64 // Frames accumulated over all processed videos.
	InputBytes  int64 // Size of the processed videos.
	OutputBytes int64 // Size of the stills written.
}

// Remaining returns the number of discovered videos not handled, e.g.
// after an interrupt.
func (s *RunStats) Remaining() int {
	return s.Total - s.Processed - s.Failed
}

// printSummary writes the end-of-batch report.
func printSummary(w io.Writer, stats *RunStats, dryRun bool) {
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Reset:   true,
		Disable: !term.Enabled(),
	}

	fmt.Fprintln(w, "==============================")
	fmt.Fprintln(w, c.Color(fmt.Sprintf(
		"Done: [green]%d processed[reset], [red]%d failed[reset], %d remaining",
		stats.Processed, stats.Failed, stats.Remaining())))

	if dryRun {
		fmt.Fprintln(w, c.Color("[yellow]Dry run: nothing was written or moved"))
		return
	}
	if stats.Processed == 0 {
		return
	}
	fmt.Fprintln(w, c.Color(fmt.Sprintf(
		"Frames: [cyan]%d[reset]  Input: [cyan]%s[reset]  Stills: [cyan]%s",
		stats.Frames,
		display.FormatBytes(stats.InputBytes),
		display.FormatBytes(stats.OutputBytes))))
}
