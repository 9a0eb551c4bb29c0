package feature

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover returns the feature files directly inside dir, sorted by file name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read features directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files, nil
}

// ParseDir parses every feature file in dir in file name order.
func ParseDir(dir string) ([]Feature, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(files))
	for _, path := range files {
		f, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}
