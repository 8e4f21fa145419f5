// Package fsutil provides file system helpers: glob-based discovery and
// whole-content atomic writes.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns every regular file under rootPath matching the
// doublestar pattern (e.g. "**/*.hcl"). Returned paths are joined onto
// rootPath and sorted lexically.
func FindFiles(rootPath string, pattern string) ([]string, error) {
	if pattern == "" {
		panic("pattern must not be empty")
	}

	fsys := os.DirFS(rootPath)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(rootPath, filepath.FromSlash(m)))
	}
	return files, nil
}

// Exists reports whether path names an existing file system entry. Errors
// other than "not exist" count as existing, since something is there.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
