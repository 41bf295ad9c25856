// Package accumulate implements the single-pass per-pixel statistics that
// summarize a video: running max/min, channel sums for the mean, a
// changed-pixel counter, and grayscale frame-to-frame motion sums.
//
// Only the previous frame is retained, so memory is O(frame size) no matter
// how long the video runs.
package accumulate

import (
	"errors"
	"fmt"

	"github.com/backmassage/longexposure/internal/frame"
)

// ErrDimensionMismatch is returned by Update when a frame's size differs
// from the seed frame.
var ErrDimensionMismatch = errors.New("frame dimensions do not match the first frame")

// Bank is the accumulator state for one video. Create it with Seed; it must
// not be reused across videos.
type Bank struct {
	width, height int

	Max frame.Frame // Channel-wise running maximum.
	Min frame.Frame // Channel-wise running minimum.
	Sum []uint32    // Per channel; 255 * 16.8M frames fits.

	Prev frame.Frame // Last frame seen; basis for motion.

	Changed     []uint32 // Per pixel: frames where any channel differed from the previous frame.
	MotionSum   []uint64 // Per pixel: sum of |luma(cur) - luma(prev)|.
	MotionSqSum []uint64 // Per pixel: sum of the squared luma diff.

	Count int // Frames consumed.

	lastMotion uint64
	prevGray   []uint8
	curGray    []uint8
}

// Seed initializes a bank from the first frame of a video.
func Seed(f frame.Frame) *Bank {
	n := f.Pixels()
	b := &Bank{
		width:       f.Width,
		height:      f.Height,
		Max:         f.Copy(),
		Min:         f.Copy(),
		Sum:         make([]uint32, len(f.Pix)),
		Prev:        f.Copy(),
		Changed:     make([]uint32, n),
		MotionSum:   make([]uint64, n),
		MotionSqSum: make([]uint64, n),
		Count:       1,
		prevGray:    f.Gray(nil),
		curGray:     make([]uint8, n),
	}
	for i, v := range f.Pix {
		b.Sum[i] = uint32(v)
	}
	return b
}

// Width returns the seeded frame width.
func (b *Bank) Width() int { return b.width }

// Height returns the seeded frame height.
func (b *Bank) Height() int { return b.height }

// Frames returns the number of frames consumed so far.
func (b *Bank) Frames() int { return b.Count }

// LastMotion returns the mean absolute luma difference introduced by the
// most recent Update, or 0 before any Update.
func (b *Bank) LastMotion() float64 {
	n := len(b.Changed)
	if n == 0 {
		return 0
	}
	return float64(b.lastMotion) / float64(n)
}

// Update folds one more frame into the statistics. Min is the true running
// minimum, min(Min, f), so it never depends on Max. A frame of a different
// size leaves the bank untouched and returns ErrDimensionMismatch.
func (b *Bank) Update(f frame.Frame) error {
	if !f.SameSize(b.Prev) || len(f.Pix) != len(b.Prev.Pix) {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, f.Width, f.Height, b.width, b.height)
	}

	maxPix, minPix, prevPix := b.Max.Pix, b.Min.Pix, b.Prev.Pix
	f.Gray(b.curGray)
	var total uint64

	for p, i := 0, 0; p < len(b.Changed); p, i = p+1, i+frame.Channels {
		changed := false
		for c := i; c < i+frame.Channels; c++ {
			v := f.Pix[c]
			if v > maxPix[c] {
				maxPix[c] = v
			}
			if v < minPix[c] {
				minPix[c] = v
			}
			b.Sum[c] += uint32(v)
			if v != prevPix[c] {
				changed = true
			}
		}
		if changed {
			b.Changed[p]++
		}

		diff := int(b.curGray[p]) - int(b.prevGray[p])
		if diff < 0 {
			diff = -diff
		}
		b.MotionSum[p] += uint64(diff)
		total += uint64(diff)
		b.MotionSqSum[p] += uint64(diff * diff)
	}

	copy(prevPix, f.Pix)
	b.prevGray, b.curGray = b.curGray, b.prevGray
	b.lastMotion = total
	b.Count++
	return nil
}
