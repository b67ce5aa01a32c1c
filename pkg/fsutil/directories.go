package fsutil

import (
	"os"
	"path/filepath"

	"github.com/cperrin88/appclean/pkg/errors"
)

// EnsureDir creates a directory and all necessary parent directories with
// DirModeDefault permissions if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// MakeDirectory creates directory, and its parents when createParents is set.
// It reports false without error when the directory already exists.
func MakeDirectory(directory string, createParents bool) (bool, error) {
	if directory == "" {
		return false, errors.ErrEmptyPath
	}
	if info, err := os.Stat(directory); err == nil {
		if info.IsDir() {
			return false, nil
		}
		return false, errors.Wrapf(errors.ErrNotDirectory, "%s", directory)
	}

	var err error
	if createParents {
		err = os.MkdirAll(directory, DirModeDefault)
	} else {
		err = os.Mkdir(directory, DirModeDefault)
	}
	if err != nil {
		return false, errors.Classify(errors.Wrapf(err, "failed to create directory %s", directory))
	}
	return true, nil
}

// DirIn returns parent/name, creating it when it is missing. An existing
// regular file at that path is left alone.
func DirIn(parent, name string) (string, error) {
	dir := filepath.Join(parent, name)
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}
	if err := os.Mkdir(dir, DirModeDefault); err != nil {
		return dir, errors.Classify(errors.Wrapf(err, "failed to create directory %s", dir))
	}
	return dir, nil
}
