package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/forgeqa/plugmatrix/common"
)

// IsFile reports whether path exists and is a regular file. A missing path is
// not an error.
func IsFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// CreateDir creates a directory and all its parents if they don't exist.
func CreateDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("path %s exists but is not a directory", path)
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(path, common.FileMode0755)
	}
	return errors.Wrapf(err, "failed to check directory %s", path)
}

// Glob returns the paths matching pattern. A pattern matching nothing yields
// an empty slice, not an error.
func Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "bad glob pattern %q", pattern)
	}
	return matches, nil
}

// ExactlyOne narrows glob matches down to a single path. Zero or multiple
// matches are errors: the caller needs an unambiguous artifact.
func ExactlyOne(pattern string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", errors.Errorf("no file matches %q", pattern)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Errorf("pattern %q is ambiguous: %d matches", pattern, len(matches))
	}
}
