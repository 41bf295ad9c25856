package finalize

import (
	"math"

	"github.com/backmassage/longexposure/internal/frame"
)

// JetLUT is the 256-entry blue-cyan-yellow-red ramp used for the motion map.
// Entry 0 is dark blue, not black; Colorize overrides it.
var JetLUT = buildJet()

func buildJet() [256][3]uint8 {
	var lut [256][3]uint8
	for i := range lut {
		x := float64(i) / 255
		lut[i] = [3]uint8{
			jetChannel(x, 3),
			jetChannel(x, 2),
			jetChannel(x, 1),
		}
	}
	return lut
}

func jetChannel(x, center float64) uint8 {
	v := 1.5 - math.Abs(4*x-center)
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// Colorize maps a normalized single-channel plane to RGB through JetLUT.
// Zero maps to pure black.
func Colorize(norm []uint8, width, height int) frame.Frame {
	out := frame.New(width, height)
	for p, v := range norm {
		if v == 0 {
			continue
		}
		c := JetLUT[v]
		i := p * frame.Channels
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c[0], c[1], c[2]
	}
	return out
}
