// Package source turns a video container into a lazy, finite, one-shot
// sequence of frames. The decoder resource behind a Source is released
// exactly once, whichever way iteration ends.
package source

import (
	"errors"
	"fmt"
	"sync"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/backmassage/longexposure/internal/frame"
)

// Sentinel errors for the recoverable source failures.
var (
	ErrOpen        = errors.New("cannot open video")
	ErrEmptyStream = errors.New("video contains no decodable frames")
	ErrDecode      = errors.New("frame decode failed")
)

// Decoder is the video decode collaborator. *vidio.Video satisfies it.
// FrameBuffer holds the most recent frame after a successful Read, packed
// as RGBA or RGB.
type Decoder interface {
	Width() int
	Height() int
	Frames() int
	FPS() float64
	Codec() string
	Read() bool
	FrameBuffer() []byte
	Close()
}

// Info is the container metadata reported before streaming starts.
type Info struct {
	Width  int
	Height int
	Frames int // Total reported by the container; 0 when unknown.
	FPS    float64
	Codec  string
}

// Source yields the frames of one video in decode order.
type Source struct {
	dec       Decoder
	info      Info
	closeOnce sync.Once
	closed    bool
	err       error
}

// Open starts decoding path. Any failure is wrapped with ErrOpen.
func Open(path string) (*Source, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	if v.Width() <= 0 || v.Height() <= 0 {
		v.Close()
		return nil, fmt.Errorf("%w %s: invalid dimensions %dx%d", ErrOpen, path, v.Width(), v.Height())
	}
	return New(v), nil
}

// New wraps an already opened decoder.
func New(dec Decoder) *Source {
	frames := dec.Frames()
	if frames < 0 {
		frames = 0
	}
	return &Source{
		dec: dec,
		info: Info{
			Width:  dec.Width(),
			Height: dec.Height(),
			Frames: frames,
			FPS:    dec.FPS(),
			Codec:  dec.Codec(),
		},
	}
}

// Info returns the container metadata.
func (s *Source) Info() Info { return s.info }

// Next decodes the next frame. It returns false once the stream is
// exhausted, after a decode error (see Err), or after Close; the decoder is
// released automatically when the stream ends.
func (s *Source) Next() (frame.Frame, bool) {
	if s.closed {
		return frame.Frame{}, false
	}
	if !s.dec.Read() {
		s.Close()
		return frame.Frame{}, false
	}
	f, err := s.convert(s.dec.FrameBuffer())
	if err != nil {
		s.err = err
		s.Close()
		return frame.Frame{}, false
	}
	return f, true
}

// Err returns the decode error that stopped Next, if any.
func (s *Source) Err() error { return s.err }

// Close releases the decoder. Safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		s.dec.Close()
	})
	return nil
}

// Each calls fn for every frame in order and returns the number of frames
// delivered. Iteration stops at the first error from fn. The decoder is
// closed before Each returns on every path, panics included. A stream that
// yields no frames at all returns ErrEmptyStream.
func (s *Source) Each(fn func(index int, f frame.Frame) error) (n int, err error) {
	defer s.Close()
	for {
		f, ok := s.Next()
		if !ok {
			break
		}
		if err := fn(n, f); err != nil {
			return n, err
		}
		n++
	}
	if s.err != nil {
		return n, s.err
	}
	if n == 0 {
		return 0, ErrEmptyStream
	}
	return n, nil
}

// convert copies the decoder's reusable buffer into a fresh RGB frame.
func (s *Source) convert(buf []byte) (frame.Frame, error) {
	w, h := s.info.Width, s.info.Height
	switch len(buf) {
	case w * h * 4:
		return frame.FromRGBA(w, h, buf)
	case w * h * frame.Channels:
		pix := make([]byte, len(buf))
		copy(pix, buf)
		return frame.FromBytes(w, h, pix)
	default:
		return frame.Frame{}, fmt.Errorf("%w: buffer of %d bytes does not match %dx%d", ErrDecode, len(buf), w, h)
	}
}
