package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"pure red", 255, 0, 0, 76},
		{"pure green", 0, 255, 0, 150},
		{"pure blue", 0, 0, 255, 29},
		{"mid gray", 128, 128, 128, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Luma(tt.r, tt.g, tt.b))
		})
	}
}

func TestGray(t *testing.T) {
	f := New(2, 1)
	f.SetRGB(1, 0, [3]uint8{255, 255, 255})
	assert.Equal(t, []uint8{0, 255}, f.Gray(nil))

	dst := make([]uint8, 2)
	out := f.Gray(dst)
	assert.Same(t, &dst[0], &out[0], "reuses the provided buffer")
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(2, 2, make([]byte, 11))
	assert.Error(t, err)

	f, err := FromBytes(2, 2, make([]byte, 12))
	require.NoError(t, err)
	assert.Equal(t, 4, f.Pixels())
}

func TestFromRGBA_DropsAlpha(t *testing.T) {
	rgba := []byte{1, 2, 3, 255, 4, 5, 6, 0}
	f, err := FromRGBA(2, 1, rgba)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, f.Pix)

	_, err = FromRGBA(2, 2, rgba)
	assert.Error(t, err)
}

func TestCopyIsIndependent(t *testing.T) {
	f := Filled(1, 1, [3]uint8{9, 9, 9})
	c := f.Copy()
	c.Pix[0] = 0
	assert.Equal(t, uint8(9), f.Pix[0])
	assert.True(t, f.SameSize(c))
}

func TestImageRoundTrip(t *testing.T) {
	f := New(3, 2)
	f.SetRGB(2, 1, [3]uint8{10, 20, 30})
	f.SetRGB(5, 5, [3]uint8{1, 1, 1}) // out of bounds, ignored

	img := f.NRGBA()
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, img.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(0, 0))

	back := FromImage(img)
	assert.Equal(t, f.Pix, back.Pix)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(6, 5, color.NRGBA{200, 100, 50, 255})
	f := FromImage(img)
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, [3]uint8{200, 100, 50}, f.RGB(1, 0))
}
