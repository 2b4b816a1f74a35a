// Package fs provides file-based reading of recipe exports and writing of
// meal plan exports.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/kitchensage"
)

// Ensure Fetcher implements kitchensage.Fetcher at compile time.
var _ kitchensage.Fetcher = (*Fetcher)(nil)

// Fetcher reads recipe exports from the local filesystem.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the contents of the file at path.
// Returns ENOTFOUND if the file does not exist and EINVALID for readable
// directories. Unreadable directories report the read error.
func (f *Fetcher) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", kitchensage.Errorf(kitchensage.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		if _, err := os.ReadDir(path); err != nil {
			return "", err
		}
		return "", kitchensage.Errorf(kitchensage.EINVALID, "%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExpandSources replaces every directory in sources with the HTML exports
// it contains, recursively and in lexical order. URLs, files and paths that
// do not exist are passed through unchanged so they fail individually later.
// So are directories that cannot be read.
func ExpandSources(sources []string) []string {
	var out []string
	for _, source := range sources {
		if kitchensage.IsRemote(source) {
			out = append(out, source)
			continue
		}

		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			out = append(out, source)
			continue
		}

		out = append(out, htmlFiles(source)...)
	}
	return out
}

func htmlFiles(dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			files = append(files, path)
			if d != nil && !d.IsDir() {
				return nil
			}
			return fs.SkipDir
		}
		if !d.IsDir() && IsExport(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}

// IsExport reports whether path has an HTML extension.
func IsExport(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
