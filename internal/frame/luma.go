package frame

// BT.601 luma weights in 14-bit fixed point (0.299, 0.587, 0.114), the same
// integer reduction common video tooling uses for RGB to gray.
const (
	lumaShift = 14
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaRound = 1 << (lumaShift - 1)
)

// Luma returns the 8-bit gray value of one RGB pixel.
func Luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB + lumaRound) >> lumaShift)
}

// Gray writes the luma of every pixel of f into dst, which must hold
// f.Pixels() bytes, and returns it. A nil dst is allocated.
func (f Frame) Gray(dst []uint8) []uint8 {
	n := f.Pixels()
	if dst == nil {
		dst = make([]uint8, n)
	}
	for p, i := 0, 0; p < n; p, i = p+1, i+Channels {
		dst[p] = Luma(f.Pix[i], f.Pix[i+1], f.Pix[i+2])
	}
	return dst
}
