package transfer

import (
	"bytes"
	"io"
	"os"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
	"github.com/cperrin88/appclean/pkg/logger"
)

// SaveStream writes everything readable from r to dst, creating or
// truncating it. When closeSource is set and r is an io.Closer, r is closed
// before returning, whatever the outcome.
func (c *Copier) SaveStream(r io.Reader, dst string, closeSource bool) (err error) {
	if closeSource {
		if closer, ok := r.(io.Closer); ok {
			defer func() { _ = closer.Close() }()
		}
	}
	defer func() {
		if err != nil {
			c.log().Warn("save failed", logger.Fields{"dst": dst, "error": err.Error()})
		}
	}()

	if dst == "" {
		return errors.ErrEmptyPath
	}
	if r == nil {
		return errors.Wrapf(errors.ErrNotFound, "no source stream for %s", dst)
	}

	if err := fsutil.EnsureFileDir(dst); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create destination directory for %s", dst))
	}
	out, err := fsutil.CreateFilePerm(dst, fsutil.FileModeDefault)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create %s", dst))
	}

	if _, err := c.pump(out, r); err != nil {
		_ = out.Close()
		return errors.Classify(errors.Wrapf(err, "failed to write %s", dst))
	}
	if err := out.Close(); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to close %s", dst))
	}
	return nil
}

// SaveBytes writes data to dst, creating or truncating it.
func (c *Copier) SaveBytes(data []byte, dst string) error {
	return c.SaveStream(bytes.NewReader(data), dst, false)
}

// ReadAll drains r into memory and closes it when it is an io.Closer.
func (c *Copier) ReadAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no source stream")
	}
	if closer, ok := r.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	var buf bytes.Buffer
	if _, err := c.pump(&buf, r); err != nil {
		c.log().Warn("read failed", logger.Fields{"error": err.Error()})
		return nil, errors.Classify(errors.Wrap(err, "failed to read stream"))
	}
	return buf.Bytes(), nil
}

// SameSize reports whether the file at path holds exactly as many bytes as
// r yields. A missing file reports false. r is drained and, when it is an
// io.Closer, closed.
func (c *Copier) SameSize(path string, r io.Reader) (bool, error) {
	if closer, ok := r.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Classify(errors.Wrapf(err, "failed to stat %s", path))
	}
	if r == nil {
		return false, nil
	}

	n, err := c.pump(io.Discard, r)
	if err != nil {
		return false, errors.Wrap(err, "failed to read stream")
	}
	return n == info.Size(), nil
}
