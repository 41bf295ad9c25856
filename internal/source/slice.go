package source

import "github.com/backmassage/longexposure/internal/frame"

// SliceDecoder is a Decoder over in-memory frames, for tests and synthetic
// inputs. It emits RGBA buffers like the ffmpeg-backed decoder does.
type SliceDecoder struct {
	W, H       int
	Rate       float64
	FrameList  []frame.Frame
	HideTotal  bool // Report 0 frames, as containers without a count do.
	CloseCalls int

	pos int
	buf []byte
}

// NewSliceDecoder returns a decoder that yields frames in order. The size is
// taken from the first frame.
func NewSliceDecoder(frames ...frame.Frame) *SliceDecoder {
	d := &SliceDecoder{Rate: 30, FrameList: frames}
	if len(frames) > 0 {
		d.W, d.H = frames[0].Width, frames[0].Height
	}
	return d
}

func (d *SliceDecoder) Width() int    { return d.W }
func (d *SliceDecoder) Height() int   { return d.H }
func (d *SliceDecoder) FPS() float64  { return d.Rate }
func (d *SliceDecoder) Codec() string { return "rawvideo" }

func (d *SliceDecoder) Frames() int {
	if d.HideTotal {
		return 0
	}
	return len(d.FrameList)
}

func (d *SliceDecoder) Read() bool {
	if d.pos >= len(d.FrameList) {
		return false
	}
	f := d.FrameList[d.pos]
	d.pos++
	d.buf = d.buf[:0]
	for i := 0; i < len(f.Pix); i += frame.Channels {
		d.buf = append(d.buf, f.Pix[i], f.Pix[i+1], f.Pix[i+2], 0xff)
	}
	return true
}

func (d *SliceDecoder) FrameBuffer() []byte { return d.buf }

func (d *SliceDecoder) Close() { d.CloseCalls++ }
