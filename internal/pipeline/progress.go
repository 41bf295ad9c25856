package pipeline

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/longexposure/internal/logging"
	"github.com/backmassage/longexposure/internal/term"
)

// frameProgress observes streaming progress for one video.
type frameProgress interface {
	Set(frames int)
	Finish()
}

// newFrameProgress returns a progress bar when w is an interactive terminal
// and the container reports its frame count, and periodic log lines
// otherwise.
func newFrameProgress(w io.Writer, isTTY bool, total, every int, log *logging.Logger) frameProgress {
	if isTTY && total > 0 {
		return &barProgress{bar: newFrameBar(w, total)}
	}
	return &logProgress{log: log, total: total, every: every}
}

func newFrameBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(term.Enabled()),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("[cyan][LE][reset] Accumulating"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

// Set ignores frames past the reported total; containers often
// under-report.
func (p *barProgress) Set(frames int) {
	if frames > p.bar.GetMax() {
		return
	}
	p.bar.Set(frames)
}

func (p *barProgress) Finish() { p.bar.Finish() }

type logProgress struct {
	log   *logging.Logger
	total int
	every int
}

func (p *logProgress) Set(frames int) {
	if frames%p.every != 0 {
		return
	}
	if p.total > 0 {
		p.log.Info("  Processing frame %d/%d", frames, p.total)
		return
	}
	p.log.Info("  Processing frame %d", frames)
}

func (p *logProgress) Finish() {}
