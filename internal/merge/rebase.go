package merge

import (
	"fmt"
	"path/filepath"
)

// Rebase re-expresses value, a path relative to fromDir, relative to toDir.
// Values are stored with forward slashes. Absolute values are always made
// relative to toDir; empty values and relative values in an unchanged frame
// pass through untouched.
func Rebase(value, fromDir, toDir string) (string, error) {
	if value == "" {
		return value, nil
	}

	native := filepath.FromSlash(value)
	if !filepath.IsAbs(native) && filepath.Clean(fromDir) == filepath.Clean(toDir) {
		return value, nil
	}

	abs := native
	if !filepath.IsAbs(native) {
		abs = filepath.Join(fromDir, native)
	}

	rel, err := filepath.Rel(toDir, abs)
	if err != nil {
		return "", fmt.Errorf("cannot rebase %q from %s to %s: %w", value, fromDir, toDir, err)
	}
	return filepath.ToSlash(rel), nil
}
