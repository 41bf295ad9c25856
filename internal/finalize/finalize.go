// Package finalize turns a terminal accumulator bank into the five
// displayable 8-bit stills for one video.
package finalize

import (
	"math"

	"github.com/backmassage/longexposure/internal/accumulate"
	"github.com/backmassage/longexposure/internal/frame"
)

// Result holds the finalized stills. All frames share the bank's dimensions.
type Result struct {
	Max            frame.Frame
	Min            frame.Frame
	Average        frame.Frame
	MotionVariance frame.Frame
	MaxMinusMin    frame.Frame
}

// Finalize derives every still from b. The bank is not modified.
func Finalize(b *accumulate.Bank) Result {
	w, h := b.Width(), b.Height()
	variance := Variance(b)
	return Result{
		Max:            b.Max.Copy(),
		Min:            b.Min.Copy(),
		Average:        Average(b),
		MotionVariance: Colorize(NormalizeMinMax(variance), w, h),
		MaxMinusMin:    MaxMinusMin(b.Max, b.Min),
	}
}

// Average returns round(sum / frames) per channel.
func Average(b *accumulate.Bank) frame.Frame {
	out := frame.New(b.Width(), b.Height())
	n := float64(b.Frames())
	if n == 0 {
		return out
	}
	for i, s := range b.Sum {
		out.Pix[i] = clamp8(math.Round(float64(s) / n))
	}
	return out
}

// MaxMinusMin returns |max - min| per channel, scaled by one global factor
// so the largest difference in the image becomes 255. A static scene yields
// the zero image.
func MaxMinusMin(maxF, minF frame.Frame) frame.Frame {
	out := frame.New(maxF.Width, maxF.Height)
	var peak uint8
	for i := range out.Pix {
		a, b := maxF.Pix[i], minF.Pix[i]
		d := a - b
		if b > a {
			d = b - a
		}
		out.Pix[i] = d
		if d > peak {
			peak = d
		}
	}
	if peak == 0 || peak == 255 {
		return out
	}
	p := uint32(peak)
	for i, d := range out.Pix {
		out.Pix[i] = uint8((uint32(d)*255 + p/2) / p)
	}
	return out
}

// Variance returns the biased per-pixel variance of the frame-to-frame luma
// difference: E[d^2] - E[d]^2 over max(frames-1, 1) transitions.
func Variance(b *accumulate.Bank) []float64 {
	n := float64(b.Frames() - 1)
	if n < 1 {
		n = 1
	}
	out := make([]float64, len(b.MotionSum))
	for p := range out {
		mean := float64(b.MotionSum[p]) / n
		meanSq := float64(b.MotionSqSum[p]) / n
		out[p] = meanSq - mean*mean
	}
	return out
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
