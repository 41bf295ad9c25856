package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/stat"

	"github.com/backmassage/longexposure/internal/config"
	"github.com/backmassage/longexposure/internal/display"
	"github.com/backmassage/longexposure/internal/logging"
)

// fileRow holds the probed per-video data for the inventory table.
type fileRow struct {
	Name       string
	Resolution string
	Frames     int
	FPS        float64
	Codec      string
	Size       int64
}

// Analyze discovers videos, opens each one for its container metadata, and
// prints an inventory table with frame-count outliers highlighted. Nothing
// is decoded, written, or moved.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) int {
	return newRunner(cfg, log).analyze(ctx)
}

// analyze returns the number of videos that could not be opened.
func (r *runner) analyze(ctx context.Context) int {
	files, err := Discover(r.cfg.InputDir, r.cfg.Extensions)
	if err != nil {
		r.log.Error("File discovery failed: %v", err)
		return 1
	}
	if len(files) == 0 {
		r.log.Warn("No video files found in %s", r.cfg.InputDir)
		return 0
	}

	r.log.Info("Analyzing %d files in %s …", len(files), r.cfg.InputDir)

	var (
		rows    []fileRow
		skipped int
		counts  []float64
	)
	for _, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		row, err := r.inspect(path)
		if err != nil {
			skipped++
			r.log.Warn("Skip (%s): %s", failureReason(err), filepath.Base(path))
			r.log.Debug(r.cfg.Verbose, "  %v", err)
			continue
		}
		rows = append(rows, row)
		if row.Frames > 0 {
			counts = append(counts, float64(row.Frames))
		}
	}

	if len(rows) == 0 {
		r.log.Warn("No files could be opened")
		return skipped
	}

	bounds := computeStats(counts)
	fmt.Fprintln(r.out)
	printAnalysisTable(r.out, rows, bounds)
	printAnalysisSummary(r.log, rows, bounds)
	return skipped
}

func (r *runner) inspect(path string) (fileRow, error) {
	src, err := r.open(path)
	if err != nil {
		return fileRow{}, err
	}
	defer src.Close()

	info := src.Info()
	row := fileRow{
		Name:       filepath.Base(path),
		Resolution: display.FormatResolution(info.Width, info.Height),
		Frames:     info.Frames,
		FPS:        info.FPS,
		Codec:      info.Codec,
	}
	if fi, err := os.Stat(path); err == nil {
		row.Size = fi.Size()
	}
	return row, nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid || v <= 0 {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

var (
	extremeColor = color.New(color.FgHiRed)
	outlierColor = color.New(color.FgHiMagenta)
)

func printAnalysisTable(w io.Writer, rows []fileRow, bounds iqrBounds) {
	cols := []string{"File", "Resolution", "Frames", "FPS", "Duration", "Codec", "Size"}
	cells := make([][]string, len(rows))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for i, r := range rows {
		cells[i] = []string{
			truncate(r.Name, 50),
			r.Resolution,
			fmtFrames(r.Frames),
			fmt.Sprintf("%.2f", r.FPS),
			display.FormatDuration(r.Frames, r.FPS),
			r.Codec,
			display.FormatBytes(r.Size),
		}
		for j, c := range cells[i] {
			if n := len([]rune(c)); n > widths[j] {
				widths[j] = n
			}
		}
	}

	header := "  " + padRow(cols, widths)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, "  "+strings.Repeat("─", len(header)-2))

	for i, r := range rows {
		class := bounds.classify(float64(r.Frames))
		row := cells[i]
		line := make([]string, len(row))
		for j, c := range row {
			line[j] = pad(c, widths[j])
		}
		// Pad the plain text first, then wrap in color, so escape bytes
		// do not count toward the column width.
		line[2] = colorize(line[2], class)
		fmt.Fprintf(w, "  %s  %s\n", strings.Join(line, "  "), formatFlag(class))
	}
	fmt.Fprintln(w)
}

func printAnalysisSummary(log *logging.Logger, rows []fileRow, bounds iqrBounds) {
	var outliers, extremes int
	for _, r := range rows {
		switch bounds.classify(float64(r.Frames)) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}

	log.Info("Analyzed %d files", len(rows))
	if bounds.valid {
		log.Info("  Frame count IQR: %.0f – %.0f (outlier < %.0f or > %.0f)",
			bounds.q1, bounds.q3, bounds.outlierLo, bounds.outlierHi)
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func fmtFrames(n int) string {
	if n <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", n)
}

func formatFlag(class string) string {
	switch class {
	case "extreme":
		return extremeColor.Sprint("[!]")
	case "outlier":
		return outlierColor.Sprint("[*]")
	default:
		return ""
	}
}

func colorize(s, class string) string {
	switch class {
	case "extreme":
		return extremeColor.Sprint(s)
	case "outlier":
		return outlierColor.Sprint(s)
	default:
		return s
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padRow(cols []string, widths []int) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pad(c, widths[i])
	}
	return strings.Join(out, "  ")
}
