// Package report ships the starter HTML pages that render the catalog and the
// run history. Both pages carry the data slot the generators rewrite.
package report

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed pages/*.html
var pages embed.FS

const (
	CatalogPage   = "catalog.html"
	DashboardPage = "dashboard.html"
)

// TimestampLayout is the zone-less local ISO layout of every timestamp the
// pages display: the catalog's generation time and each run's timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Page returns the embedded starter page with the given name.
func Page(name string) ([]byte, error) {
	data, err := pages.ReadFile("pages/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown report page %q", name)
	}
	return data, nil
}

// Written describes one page handled by Scaffold.
type Written struct {
	Path string
	// Kept is true when an existing page was left in place.
	Kept bool
}

// Scaffold writes the starter pages into dir under their default names.
// Existing pages are kept unless force is set.
func Scaffold(dir string, force bool) ([]Written, error) {
	return ScaffoldPages(map[string]string{
		CatalogPage:   filepath.Join(dir, CatalogPage),
		DashboardPage: filepath.Join(dir, DashboardPage),
	}, force)
}

// ScaffoldPages writes each named starter page to its target path.
func ScaffoldPages(targets map[string]string, force bool) ([]Written, error) {
	var written []Written
	for _, name := range []string{CatalogPage, DashboardPage} {
		path, ok := targets[name]
		if !ok {
			continue
		}

		if _, err := os.Stat(path); err == nil && !force {
			written = append(written, Written{Path: path, Kept: true})
			continue
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("failed to check %s: %w", path, err)
		}

		data, err := Page(name)
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, Written{Path: path})
	}
	return written, nil
}
