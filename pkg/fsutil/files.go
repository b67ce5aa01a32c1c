package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/appclean/pkg/errors"
)

// CreateFile makes sure path exists as a file, creating missing parent
// directories. An existing file is left untouched.
func CreateFile(path string) error {
	if path == "" {
		return errors.ErrEmptyPath
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := EnsureFileDir(path); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create parent of %s", path))
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileModeDefault)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create file %s", path))
	}
	return f.Close()
}

// CreateFilePerm creates (or truncates) a file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}

// ExtractName returns the last element of path when it carries an
// extension, and "" otherwise.
func ExtractName(path string) string {
	base := filepath.Base(path)
	if path == "" || filepath.Ext(base) == "" {
		return ""
	}
	return base
}

// ExtractSuffix returns everything after the last '.' in path, or path
// itself when it has no dot.
func ExtractSuffix(path string) string {
	return path[strings.LastIndex(path, ".")+1:]
}
