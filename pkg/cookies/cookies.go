//go:generate mockgen -destination=mocks/cookies.go . Store

// Package cookies clears the web-view cookie jar of an application.
package cookies

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-version"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Store is the cookie jar the platform keeps for an application.
type Store interface {
	// RemoveAll drops every cookie.
	RemoveAll() error
	// Sync flushes pending cookie writes. Older platforms require this
	// before RemoveAll takes effect.
	Sync() error
}

// DefaultFiles are the cookie databases below the databases directory.
var DefaultFiles = []string{
	"webviewCookiesChromium.db",
	"webviewCookiesChromiumPrivate.db",
}

// journalSuffixes name the SQLite companions of a cookie database.
var journalSuffixes = []string{"-journal", "-wal"}

// FileStore is a Store backed by cookie database files.
type FileStore struct {
	Paths []string
}

// NewFileStore returns a FileStore for names below databasesDir. With no
// names, DefaultFiles are used.
func NewFileStore(databasesDir string, names ...string) *FileStore {
	if len(names) == 0 {
		names = DefaultFiles
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(databasesDir, name))
	}
	return &FileStore{Paths: paths}
}

// RemoveAll deletes the cookie databases. Missing files are fine.
func (s *FileStore) RemoveAll() error {
	for _, path := range s.Paths {
		if err := removeIfExists(path); err != nil {
			return err
		}
	}
	return nil
}

// Sync discards uncommitted journal files so a removed database is not
// rebuilt from them.
func (s *FileStore) Sync() error {
	for _, path := range s.Paths {
		for _, suffix := range journalSuffixes {
			if err := removeIfExists(path + suffix); err != nil {
				return err
			}
		}
	}
	return nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Classify(errors.Wrapf(err, "failed to remove cookie file %s", path))
}

// legacyBefore is the first platform release without the separate sync
// manager.
var legacyBefore = version.Must(version.NewVersion("5.0"))

// Cleaner clears a Store, syncing first on legacy platforms.
type Cleaner struct {
	Store           Store
	PlatformVersion string
}

// Clean removes every cookie. Panics raised by the Store are returned as
// errors.
func (c *Cleaner) Clean() (err error) {
	if c.Store == nil {
		return errors.Wrap(errors.ErrUnsupported, "no cookie store")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cookie store panicked: %v", r)
		}
	}()

	if c.Legacy() {
		if err := c.Store.Sync(); err != nil {
			return errors.Wrap(err, "failed to sync cookie store")
		}
	}
	if err := c.Store.RemoveAll(); err != nil {
		return errors.Wrap(err, "failed to remove cookies")
	}
	return nil
}

// Legacy reports whether the platform version predates 5.0. Versions that
// cannot be parsed count as modern.
func (c *Cleaner) Legacy() bool {
	if c.PlatformVersion == "" {
		return false
	}
	v, err := version.NewVersion(c.PlatformVersion)
	if err != nil {
		return false
	}
	return v.LessThan(legacyBefore)
}
