package output

import (
	"fmt"
	"io"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SuffixMotionProfile names the optional per-frame motion chart.
const SuffixMotionProfile = "_motion_profile"

// ProfileName returns the motion chart file name for a video basename.
func ProfileName(base string) string { return base + SuffixMotionProfile + ext }

// WriteMotionProfile charts the mean frame-to-frame luma difference against
// frame index and saves it as a PNG in dir. series[i] is the motion between
// frame i and frame i+1.
func WriteMotionProfile(dir, base string, series []float64) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("%w: no frame transitions to chart", ErrWrite)
	}

	p := plot.New()
	p.Title.Text = "Motion profile: " + base
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Mean |Δ luma|"
	p.Y.Min = 0

	data := make(plotter.XYs, len(series))
	for i, v := range series {
		data[i].X = float64(i + 1)
		data[i].Y = v
	}
	if err := plotutil.AddLines(p, "motion", data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	path := filepath.Join(dir, ProfileName(base))
	err = atomicWrite(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}
