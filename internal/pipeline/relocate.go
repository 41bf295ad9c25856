package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// relocate moves path into dir, keeping its basename, and returns the new
// path. When dir is on another filesystem the file is copied and the
// original removed.
func relocate(path, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(path))
	err := os.Rename(path, dst)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return "", err
	}
	if err := copyFile(path, dst); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("cross-device move: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("cross-device move: remove source: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
