package transfer

import (
	"os"
	"strings"
	"syscall"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
	"github.com/cperrin88/appclean/pkg/logger"
)

// MoveFile moves the regular file src to dst. An atomic rename is tried
// first; when that fails the file is copied and the source removed. A source
// that survives the copy is registered for deferred deletion and the move
// still counts as done.
func (c *Copier) MoveFile(src, dst string) error {
	if src == "" || dst == "" {
		return errors.ErrEmptyPaths
	}

	info, err := os.Stat(src)
	if err != nil {
		err = errors.Classify(errors.Wrapf(err, "failed to stat source %s", src))
		c.log().Warn("move failed", logger.Fields{"src": src, "dst": dst, "error": err.Error()})
		return err
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrUnsupported, "cannot move directory %s", src)
	}

	if err := fsutil.EnsureFileDir(dst); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create destination directory for %s", dst))
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}
	c.log().Debug("rename failed, copying instead", logger.Fields{
		"src":          src,
		"dst":          dst,
		"cross_device": isCrossDeviceError(renameErr),
		"error":        renameErr.Error(),
	})

	if err := c.CopyFile(src, dst); err != nil {
		return err
	}

	if err := os.Remove(src); err != nil {
		c.Registry.Add(src)
		c.log().Warn("source could not be removed after move, deferring", logger.Fields{
			"src":   src,
			"error": err.Error(),
		})
	}
	return nil
}

// isCrossDeviceError reports whether a rename failed because src and dst
// live on different filesystems.
func isCrossDeviceError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EXDEV) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"cross-device", "cross device", "different disk drive"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
