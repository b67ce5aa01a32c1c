// Package archive writes and restores tar.gz snapshots of application
// directories.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archives"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
)

// Extension is appended to snapshot file names.
const Extension = ".tar.gz"

// snapshotTimeFormat sorts lexically and avoids ':' for Windows.
const snapshotTimeFormat = "20060102T150405.000000000Z"

// Manager creates and extracts snapshot archives.
type Manager struct {
	// Now stamps snapshot names; nil means time.Now.
	Now func() time.Time
}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Snapshot archives sourceDir into backupDir as <label>-<timestamp>.tar.gz
// and returns the archive path.
func (am *Manager) Snapshot(ctx context.Context, backupDir, label, sourceDir string) (string, error) {
	if backupDir == "" || label == "" {
		return "", errors.ErrEmptyPath
	}
	name := fmt.Sprintf("%s-%s%s", label, am.now().UTC().Format(snapshotTimeFormat), Extension)
	archivePath := filepath.Join(backupDir, name)
	if err := am.Create(ctx, sourceDir, archivePath); err != nil {
		return "", err
	}
	return archivePath, nil
}

// Create archives the contents of sourceDir into archivePath. Entries are
// stored relative to sourceDir. The archive is written to a temporary file
// first, so a failed run leaves nothing at archivePath.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return errors.Wrapf(err, "failed to get absolute path for %s", sourceDir)
	}
	entries, err := os.ReadDir(absolutePath)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to read %s", sourceDir))
	}

	var files []archives.FileInfo
	if len(entries) > 0 {
		files, err = archives.FilesFromDisk(ctx, nil, map[string]string{
			absolutePath + string(os.PathSeparator): "",
		})
		if err != nil {
			return errors.Wrapf(err, "failed to read files from %s", sourceDir)
		}
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create directory for %s", archivePath))
	}
	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".snapshot-*")
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create output file for %s", archivePath))
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, tmp, files); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to create archive %s", archivePath)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to flush archive %s", archivePath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close archive %s", archivePath)
	}
	if err := os.Rename(tmpPath, archivePath); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to move archive into place at %s", archivePath))
	}
	return nil
}

// ExtractAll extracts every entry of archivePath below destDir.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create %s", destDir))
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return am.extractEntry(fsys, path, destDir, d)
	})
}

// ExtractFile extracts the single entry name from archivePath to destPath.
func (am *Manager) ExtractFile(ctx context.Context, archivePath, name, destPath string) error {
	fsys, err := openArchive(ctx, archivePath)
	if err != nil {
		return err
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "%s not found in %s", name, archivePath))
	}
	return am.writeRegularFile(fsys, name, destPath, info)
}

func openArchive(ctx context.Context, archivePath string) (fs.FS, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, errors.Classify(errors.Wrapf(err, "failed to open archive %s", archivePath))
	}
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	return fsys, nil
}

func (am *Manager) extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return errors.Wrapf(errors.ErrUnsupported, "archive entry %q escapes destination", path)
	}

	targetPath := filepath.Join(destDir, filepath.FromSlash(path))
	if d.IsDir() {
		return fsutil.EnsureDir(targetPath)
	}

	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, "failed to get file info for %s", path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return am.writeSymlink(fsys, path, targetPath)
	}
	return am.writeRegularFile(fsys, path, targetPath, info)
}

func (am *Manager) writeSymlink(fsys fs.FS, path, targetPath string) error {
	link, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read symlink %s", path)
	}
	defer func() { _ = link.Close() }()

	target, err := io.ReadAll(link)
	if err != nil {
		return errors.Wrapf(err, "failed to read symlink target %s", path)
	}
	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return errors.Wrapf(err, "failed to create parent directory for symlink %s", path)
	}

	_ = os.Remove(targetPath)
	return os.Symlink(string(target), targetPath)
}

// writeRegularFile copies an entry to targetPath, keeping its mode and
// modification time.
func (am *Manager) writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	src, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create parent directory for %s", path))
	}
	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dst, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create %s", targetPath))
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, "failed to copy %s", path)
	}
	if err := os.Chmod(targetPath, perm); err != nil {
		return errors.Wrapf(err, "failed to set permissions for %s", targetPath)
	}
	if err := os.Chtimes(targetPath, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, "failed to set modification time for %s", targetPath)
	}
	return nil
}

func (am *Manager) now() time.Time {
	if am.Now == nil {
		return time.Now()
	}
	return am.Now()
}
