package tree

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cperrin88/appclean/pkg/errors"
)

// DirectorySize returns the total size in bytes of every file below root.
// Each regular file is opened and stat-ed, so unreadable files fail the
// whole computation. Symbolic links count with their own size and are not
// followed.
func DirectorySize(root string) (int64, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, errors.Classify(errors.Wrapf(err, "failed to list %s", root))
	}

	var total int64
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		var size int64
		switch {
		case entry.IsDir():
			size, err = DirectorySize(path)
		case entry.Type()&fs.ModeSymlink != 0:
			size, err = linkSize(path)
		default:
			size, err = fileSize(path)
		}
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

func fileSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Classify(errors.Wrapf(err, "failed to open %s", path))
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, errors.Classify(errors.Wrapf(err, "failed to stat %s", path))
	}
	return info.Size(), nil
}

func linkSize(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, errors.Classify(errors.Wrapf(err, "failed to stat %s", path))
	}
	return info.Size(), nil
}
