package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the regular files directly inside dir whose extension
// (case-insensitive) is in exts, sorted lexicographically for a
// deterministic processing order. Subdirectories are not descended into:
// the exposures and processed directories live inside dir.
func Discover(dir string, exts []string) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(e)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if want[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
