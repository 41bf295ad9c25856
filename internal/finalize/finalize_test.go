package finalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/longexposure/internal/accumulate"
	"github.com/backmassage/longexposure/internal/frame"
)

var (
	black = [3]uint8{0, 0, 0}
	white = [3]uint8{255, 255, 255}
)

func bank(t *testing.T, frames ...frame.Frame) *accumulate.Bank {
	t.Helper()
	b := accumulate.Seed(frames[0])
	for _, f := range frames[1:] {
		require.NoError(t, b.Update(f))
	}
	return b
}

func allZero(pix []byte) bool {
	for _, v := range pix {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestFinalize_BlackWhiteBlack(t *testing.T) {
	r := Finalize(bank(t,
		frame.Filled(2, 2, black),
		frame.Filled(2, 2, white),
		frame.Filled(2, 2, black),
	))

	assert.Equal(t, frame.Filled(2, 2, white).Pix, r.Max.Pix)
	assert.Equal(t, frame.Filled(2, 2, black).Pix, r.Min.Pix)
	assert.Equal(t, frame.Filled(2, 2, [3]uint8{85, 85, 85}).Pix, r.Average.Pix)
	assert.Equal(t, frame.Filled(2, 2, white).Pix, r.MaxMinusMin.Pix)

	// Every pixel flips identically, so the variance is spatially uniform
	// and min-max normalization renders it black.
	assert.True(t, allZero(r.MotionVariance.Pix))
}

func TestFinalize_MotionVarianceNonBlack(t *testing.T) {
	// Pixel 0 flips once then holds; pixel 1 is static.
	a := frame.New(2, 1)
	c := frame.New(2, 1)
	c.SetRGB(0, 0, white)

	r := Finalize(bank(t, a, c, c))

	assert.Equal(t, JetLUT[255], r.MotionVariance.RGB(0, 0))
	assert.Equal(t, black, r.MotionVariance.RGB(1, 0))
	assert.False(t, allZero(r.MotionVariance.Pix))
}

func TestFinalize_SingleFrame(t *testing.T) {
	f := frame.Filled(3, 2, [3]uint8{10, 20, 30})
	f.SetRGB(1, 1, [3]uint8{200, 100, 0})

	r := Finalize(bank(t, f))

	assert.Equal(t, f.Pix, r.Max.Pix)
	assert.Equal(t, f.Pix, r.Min.Pix)
	assert.Equal(t, f.Pix, r.Average.Pix)
	assert.True(t, allZero(r.MotionVariance.Pix))
	assert.True(t, allZero(r.MaxMinusMin.Pix))
}

func TestFinalize_IdenticalFrames(t *testing.T) {
	f := frame.Filled(2, 2, [3]uint8{40, 80, 120})
	r := Finalize(bank(t, f, f, f, f))

	assert.Equal(t, f.Pix, r.Max.Pix)
	assert.Equal(t, f.Pix, r.Min.Pix)
	assert.Equal(t, f.Pix, r.Average.Pix)
	assert.True(t, allZero(r.MotionVariance.Pix))
	assert.True(t, allZero(r.MaxMinusMin.Pix))
}

func TestFinalize_DoesNotAliasBank(t *testing.T) {
	b := bank(t, frame.Filled(1, 1, black), frame.Filled(1, 1, white))
	r := Finalize(b)
	r.Max.Pix[0] = 7
	assert.Equal(t, uint8(255), b.Max.Pix[0])
}

func TestAverage_OrderInvariant(t *testing.T) {
	a := frame.Filled(1, 1, [3]uint8{10, 0, 0})
	b := frame.Filled(1, 1, [3]uint8{200, 50, 3})
	c := frame.Filled(1, 1, [3]uint8{90, 255, 4})

	want := Average(bank(t, a, b, c)).Pix
	assert.Equal(t, want, Average(bank(t, c, a, b)).Pix)
	assert.Equal(t, want, Average(bank(t, b, c, a)).Pix)
	assert.Equal(t, []byte{100, 102, 2}, want)
}

func TestVariance_OrderSensitive(t *testing.T) {
	k := frame.Filled(1, 1, black)
	w := frame.Filled(1, 1, white)

	// Same frames, different adjacency: diffs 255,255,255 vs 0,255,0.
	alternating := Variance(bank(t, k, w, k, w))
	grouped := Variance(bank(t, k, k, w, w))
	assert.InDelta(t, 0, alternating[0], 1e-9)
	assert.InDelta(t, 14450, grouped[0], 1e-9)
	assert.NotEqual(t, alternating, grouped)

	// Average is unaffected by the same reordering.
	assert.Equal(t, Average(bank(t, k, w, k, w)).Pix, Average(bank(t, k, k, w, w)).Pix)
}

func TestVariance_Biased(t *testing.T) {
	k := frame.Filled(1, 1, black)
	w := frame.Filled(1, 1, white)

	// Diffs 255, 0: E[d] = 127.5, E[d^2] = 32512.5.
	v := Variance(bank(t, k, w, w))
	assert.InDelta(t, 16256.25, v[0], 1e-9)
}

func TestMaxMinusMin_GlobalRescale(t *testing.T) {
	maxF := frame.New(2, 1)
	minF := frame.New(2, 1)
	maxF.SetRGB(0, 0, [3]uint8{100, 0, 0})
	maxF.SetRGB(1, 0, [3]uint8{50, 0, 0})

	out := MaxMinusMin(maxF, minF)
	assert.Equal(t, [3]uint8{255, 0, 0}, out.RGB(0, 0))
	assert.Equal(t, [3]uint8{128, 0, 0}, out.RGB(1, 0))
}

func TestMaxMinusMin_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		peak, d, want uint8
	}{
		{100, 50, 128},
		{100, 100, 255},
		{100, 1, 3},
		{2, 1, 128},
		{200, 3, 4},
		{254, 127, 128},
		{1, 1, 255},
	}
	for _, tt := range tests {
		maxF := frame.New(2, 1)
		minF := frame.New(2, 1)
		maxF.SetRGB(0, 0, [3]uint8{tt.peak, 0, 0})
		maxF.SetRGB(1, 0, [3]uint8{0, tt.d, 0})

		out := MaxMinusMin(maxF, minF)
		assert.Equal(t, uint8(255), out.RGB(0, 0)[0])
		assert.Equal(t, tt.want, out.RGB(1, 0)[1], "%d of %d", tt.d, tt.peak)
	}
}

func TestMaxMinusMin_Static(t *testing.T) {
	f := frame.Filled(2, 2, [3]uint8{9, 9, 9})
	assert.True(t, allZero(MaxMinusMin(f, f.Copy()).Pix))
}

func TestNormalizeMinMax(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []uint8
	}{
		{"empty", nil, []uint8{}},
		{"uniform", []float64{3, 3, 3}, []uint8{0, 0, 0}},
		{"zero", []float64{0, 0}, []uint8{0, 0}},
		{"linear", []float64{10, 20, 30}, []uint8{0, 128, 255}},
		{"negative offset", []float64{-1, 1}, []uint8{0, 255}},
		{"half of hundred", []float64{0, 50, 100}, []uint8{0, 128, 255}},
		{"thirds", []float64{0, 1, 3}, []uint8{0, 85, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMinMax(tt.in))
		})
	}
}

func TestJetLUT(t *testing.T) {
	assert.Equal(t, [3]uint8{0, 0, 128}, JetLUT[0], "low end of the ramp is not black")
	assert.Equal(t, [3]uint8{128, 0, 0}, JetLUT[255])
	mid := JetLUT[128]
	assert.Greater(t, mid[1], uint8(200), "middle of the ramp is green-dominant")
}

func TestColorize_ZeroIsBlack(t *testing.T) {
	out := Colorize([]uint8{0, 1, 255}, 3, 1)
	assert.Equal(t, black, out.RGB(0, 0))
	assert.Equal(t, JetLUT[1], out.RGB(1, 0))
	assert.Equal(t, JetLUT[255], out.RGB(2, 0))
}
