package cache

import (
	"time"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/archive"
	"github.com/cperrin88/appclean/pkg/cookies"
	"github.com/cperrin88/appclean/pkg/hooks"
	"github.com/cperrin88/appclean/pkg/logger"
	"github.com/cperrin88/appclean/pkg/storage"
	"github.com/cperrin88/appclean/pkg/tree"
)

// DefaultProcessTimeout bounds a native delete started as a fallback.
const DefaultProcessTimeout = 2 * time.Minute

// Option configures a DefaultManager.
type Option func(*DefaultManager)

// WithResolver sets the directory resolver.
func WithResolver(r *appdir.Resolver) Option {
	return func(m *DefaultManager) { m.resolver = r }
}

// WithDeleter sets the tree deleter.
func WithDeleter(d *tree.Deleter) Option {
	return func(m *DefaultManager) { m.deleter = d }
}

// WithProbe sets the external storage probe.
func WithProbe(p storage.Probe) Option {
	return func(m *DefaultManager) { m.probe = p }
}

// WithCookieStore sets the cookie store. Without one, the cookie databases
// below the databases directory are removed.
func WithCookieStore(s cookies.Store) Option {
	return func(m *DefaultManager) { m.cookieStore = s }
}

// WithCookieFiles names the cookie databases used when no store is set.
func WithCookieFiles(names ...string) Option {
	return func(m *DefaultManager) { m.cookieFiles = names }
}

// WithHooks sets the hook manager run around each target.
func WithHooks(h hooks.HookManager) Option {
	return func(m *DefaultManager) { m.hooks = h }
}

// WithBackupDir enables a snapshot of every target before it is deleted.
func WithBackupDir(dir string) Option {
	return func(m *DefaultManager) { m.backupDir = dir }
}

// WithArchiver sets the snapshot writer.
func WithArchiver(a *archive.Manager) Option {
	return func(m *DefaultManager) { m.archiver = a }
}

// WithLogger sets the logging sink.
func WithLogger(l logger.Sink) Option {
	return func(m *DefaultManager) { m.log = l }
}

// WithProcessFallback retries failed deletions with the native remove
// command.
func WithProcessFallback(enabled bool) Option {
	return func(m *DefaultManager) { m.processFallback = enabled }
}

// WithProcessTimeout bounds each native remove.
func WithProcessTimeout(d time.Duration) Option {
	return func(m *DefaultManager) { m.processTimeout = d }
}
