// Package transfer moves bytes between streams and files in bounded chunks.
package transfer

import (
	"io"
	"os"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
	"github.com/cperrin88/appclean/pkg/logger"
	"github.com/cperrin88/appclean/pkg/tree"
)

const (
	// DefaultChunkSize is the buffer size used when none is configured.
	DefaultChunkSize = 10 * 1024
	// MinChunkSize is the smallest buffer a Copier will use.
	MinChunkSize = 8 * 1024
)

// Copier copies files and streams through a single reusable buffer per call.
// It holds no locks; concurrent calls on the same destination race.
type Copier struct {
	ChunkSize int
	Log       logger.Sink
	// Registry receives move sources that were copied but could not be
	// removed.
	Registry *tree.Registry
}

// Option configures a Copier.
type Option func(*Copier)

// WithChunkSize sets the buffer size. Values below MinChunkSize are raised.
func WithChunkSize(size int) Option {
	return func(c *Copier) { c.ChunkSize = size }
}

// WithLogger sets the logging sink.
func WithLogger(l logger.Sink) Option {
	return func(c *Copier) { c.Log = l }
}

// WithRegistry sets the deferred deletion registry.
func WithRegistry(r *tree.Registry) Option {
	return func(c *Copier) { c.Registry = r }
}

// NewCopier creates a Copier using DefaultChunkSize.
func NewCopier(opts ...Option) *Copier {
	c := &Copier{
		ChunkSize: DefaultChunkSize,
		Registry:  tree.NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CopyFile copies the regular file src to dst, creating dst's parent
// directories. A partially written dst is left in place on failure.
func (c *Copier) CopyFile(src, dst string) error {
	err := c.copyFile(src, dst)
	if err != nil {
		c.log().Warn("copy failed", logger.Fields{"src": src, "dst": dst, "error": err.Error()})
	}
	return err
}

func (c *Copier) copyFile(src, dst string) error {
	if src == "" || dst == "" {
		return errors.ErrEmptyPaths
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to open source file %s", src))
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to stat %s", src))
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrUnsupported, "cannot copy directory %s", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return nil
	}

	if err := fsutil.EnsureFileDir(dst); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create destination directory for %s", dst))
	}
	out, err := fsutil.CreateFilePerm(dst, fsutil.FileModeDefault)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to create destination file %s", dst))
	}

	if _, err := c.pump(out, in); err != nil {
		_ = out.Close()
		return errors.Classify(errors.Wrapf(err, "failed to copy from %s to %s", src, dst))
	}
	if err := out.Close(); err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to close %s", dst))
	}
	return nil
}

// pump copies src to dst one chunk at a time through a single buffer.
func (c *Copier) pump(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, c.chunkSize())
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}

func (c *Copier) chunkSize() int {
	switch {
	case c.ChunkSize == 0:
		return DefaultChunkSize
	case c.ChunkSize < MinChunkSize:
		return MinChunkSize
	default:
		return c.ChunkSize
	}
}

func (c *Copier) log() logger.Sink {
	return logger.OrNop(c.Log)
}
