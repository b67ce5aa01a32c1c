//go:build !windows

package storage

import "golang.org/x/sys/unix"

// diskFreeSpace returns the available disk space in bytes for path.
func diskFreeSpace(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	// Bavail and Bsize differ in width across platforms.
	return int64(stat.Bavail) * int64(stat.Bsize), nil //nolint:unconvert,gosec
}
