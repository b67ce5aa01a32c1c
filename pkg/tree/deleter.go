// Package tree deletes and measures directory trees. Deletion is attempted
// with direct filesystem calls first; a native-process fallback exists for
// cases that must match OS semantics exactly.
package tree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/logger"
)

// DefaultPollInterval is how often a running native process is checked on.
const DefaultPollInterval = 250 * time.Millisecond

// Deleter removes directory trees.
type Deleter struct {
	// Recursive descends into subdirectories before removing them. When
	// false only the immediate children are removed, so a non-empty
	// subdirectory makes the whole delete fail.
	Recursive bool
	Registry  *Registry
	Log       logger.Sink
	// GOOS selects the native command syntax; empty means runtime.GOOS.
	GOOS         string
	PollInterval time.Duration
}

// Option configures a Deleter.
type Option func(*Deleter)

// WithRecursive toggles recursive descent.
func WithRecursive(recursive bool) Option {
	return func(d *Deleter) { d.Recursive = recursive }
}

// WithRegistry sets the deferred deletion registry.
func WithRegistry(r *Registry) Option {
	return func(d *Deleter) { d.Registry = r }
}

// WithLogger sets the logging sink.
func WithLogger(l logger.Sink) Option {
	return func(d *Deleter) { d.Log = l }
}

// WithGOOS overrides the OS used for native commands.
func WithGOOS(goos string) Option {
	return func(d *Deleter) { d.GOOS = goos }
}

// WithPollInterval sets how often a running native process is checked on.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Deleter) { d.PollInterval = interval }
}

// NewDeleter creates a recursive Deleter with its own Registry.
func NewDeleter(opts ...Option) *Deleter {
	d := &Deleter{
		Recursive:    true,
		Registry:     NewRegistry(),
		PollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delete removes root and everything below it.
//
// A root that is missing or not a directory yields an error and nothing is
// touched. Children that cannot be removed are registered for deferred
// deletion and processing continues. The root is removed last; if that fails
// after at least one child was removed, the error wraps ErrPartialFailure.
func (d *Deleter) Delete(root string) error {
	if root == "" {
		return errors.ErrEmptyPath
	}
	info, err := os.Lstat(root)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "cannot delete %s", root))
	}
	if !info.IsDir() {
		return errors.Wrapf(errors.ErrNotDirectory, "cannot delete %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return errors.Classify(errors.Wrapf(err, "failed to list %s", root))
	}

	removed := 0
	var firstErr error
	for _, entry := range entries {
		child := filepath.Join(root, entry.Name())
		if err := d.removeChild(child, entry); err != nil {
			d.log().Debug("could not remove entry, deferring", logger.Fields{"path": child, "error": err.Error()})
			d.Registry.Add(child)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}

	rootErr := os.Remove(root)
	if rootErr == nil {
		return nil
	}
	d.Registry.Add(root)

	cause := rootErr
	if firstErr != nil {
		cause = firstErr
	}
	if removed > 0 {
		return fmt.Errorf("%w: removed %d of %d entries from %s: %w",
			errors.ErrPartialFailure, removed, len(entries), root, errors.Classify(cause))
	}
	return errors.Classify(errors.Wrapf(cause, "failed to delete %s", root))
}

// DeleteTree is Delete reduced to a boolean; failures are logged.
func (d *Deleter) DeleteTree(root string) bool {
	if err := d.Delete(root); err != nil {
		d.log().Warn("directory delete failed", logger.Fields{"path": root, "error": err.Error()})
		return false
	}
	d.log().Debug("directory deleted", logger.Fields{"path": root})
	return true
}

// DeleteFile removes a single file. A file that cannot be removed is
// registered for deferred deletion.
func (d *Deleter) DeleteFile(path string) bool {
	err := os.Remove(path)
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		d.Registry.Add(path)
	}
	d.log().Warn("file delete failed", logger.Fields{"path": path, "error": err.Error()})
	return false
}

func (d *Deleter) removeChild(path string, entry fs.DirEntry) error {
	if d.Recursive && entry.IsDir() {
		return d.Delete(path)
	}
	return os.Remove(path)
}

func (d *Deleter) log() logger.Sink {
	return logger.OrNop(d.Log)
}

func (d *Deleter) goos() string {
	if d.GOOS == "" {
		return runtime.GOOS
	}
	return d.GOOS
}

func (d *Deleter) pollInterval() time.Duration {
	if d.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return d.PollInterval
}
