// Package output writes the finalized stills of a video as PNG files.
package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/backmassage/longexposure/internal/finalize"
	"github.com/backmassage/longexposure/internal/frame"
)

// ErrWrite is returned by WriteSet when any still could not be written.
var ErrWrite = errors.New("cannot write exposure images")

// File name suffixes, one per still.
const (
	SuffixMax            = "_max"
	SuffixMin            = "_min"
	SuffixAverage        = "_avg"
	SuffixMotionVariance = "_motion_variance"
	SuffixMaxMinusMin    = "_max_minus_min"

	ext = ".png"
)

var encodePNG = func(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

type still struct {
	suffix string
	img    frame.Frame
}

func stills(r finalize.Result) []still {
	return []still{
		{SuffixMax, r.Max},
		{SuffixMin, r.Min},
		{SuffixAverage, r.Average},
		{SuffixMotionVariance, r.MotionVariance},
		{SuffixMaxMinusMin, r.MaxMinusMin},
	}
}

// Names returns the five output file names for a video basename (without
// extension), in write order.
func Names(base string) []string {
	return []string{
		base + SuffixMax + ext,
		base + SuffixMin + ext,
		base + SuffixAverage + ext,
		base + SuffixMotionVariance + ext,
		base + SuffixMaxMinusMin + ext,
	}
}

// WriteSet writes all five stills of r into dir and returns their paths.
// Every still is encoded to a temporary file first; only when all five
// encode cleanly are they renamed into place. On an encode failure nothing
// under a final name is touched, so stills from an earlier run survive, and
// the error wraps ErrWrite together with every per-file cause.
func WriteSet(dir, base string, r finalize.Result) ([]string, error) {
	type staged struct {
		tmp, path string
	}
	var (
		pending []staged
		errs    []error
	)
	for _, s := range stills(r) {
		path := filepath.Join(dir, base+s.suffix+ext)
		img := s.img
		tmp, err := writeTemp(path, func(w io.Writer) error {
			return encodePNG(w, img.NRGBA())
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		pending = append(pending, staged{tmp, path})
	}
	if len(errs) > 0 {
		for _, p := range pending {
			os.Remove(p.tmp)
		}
		return nil, errors.Join(append([]error{ErrWrite}, errs...)...)
	}

	written := make([]string, 0, len(pending))
	for i, p := range pending {
		if err := os.Rename(p.tmp, p.path); err != nil {
			for _, rest := range pending[i:] {
				os.Remove(rest.tmp)
			}
			return written, errors.Join(ErrWrite, fmt.Errorf("%s: %w", filepath.Base(p.path), err))
		}
		written = append(written, p.path)
	}
	return written, nil
}

// writeTemp fills a sibling temp file of path and returns its name. The
// temp file is removed on failure.
func writeTemp(path string, fill func(io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return tmpName, nil
}

// atomicWrite creates path via a sibling temp file so a failed or
// interrupted write never leaves a truncated file under the final name.
func atomicWrite(path string, fill func(io.Writer) error) error {
	tmpName, err := writeTemp(path, fill)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
