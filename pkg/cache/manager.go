// Package cache cleans the cache, databases, preferences and files of an
// installed application.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/archive"
	"github.com/cperrin88/appclean/pkg/cookies"
	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/hooks"
	"github.com/cperrin88/appclean/pkg/logger"
	"github.com/cperrin88/appclean/pkg/storage"
	"github.com/cperrin88/appclean/pkg/tree"
)

// WebCacheFiles are the web-view caches removed by CleanWebCache.
var WebCacheFiles = map[appdir.Kind]string{
	appdir.KindDatabases: "webview.db",
	appdir.KindCache:     "ApplicationCache.db",
}

// databaseCompanions are the SQLite side files of a database.
var databaseCompanions = []string{"-journal", "-wal", "-shm"}

// DefaultManager implements Manager for one application.
type DefaultManager struct {
	app             appdir.Context
	resolver        *appdir.Resolver
	deleter         *tree.Deleter
	probe           storage.Probe
	cookieStore     cookies.Store
	cookieFiles     []string
	hooks           hooks.HookManager
	archiver        *archive.Manager
	backupDir       string
	log             logger.Sink
	processFallback bool
	processTimeout  time.Duration
}

// NewManager creates a manager for app. Unset collaborators get defaults:
// Android roots, a recursive deleter, and a storage probe on the external
// root.
func NewManager(app appdir.Context, opts ...Option) *DefaultManager {
	m := &DefaultManager{
		app:            app,
		processTimeout: DefaultProcessTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.log = logger.OrNop(m.log)
	if m.processTimeout <= 0 {
		m.processTimeout = DefaultProcessTimeout
	}
	if m.resolver == nil {
		m.resolver = appdir.NewResolver("", "")
	}
	if m.deleter == nil {
		m.deleter = tree.NewDeleter(tree.WithLogger(m.log))
	}
	if m.deleter.Registry == nil {
		m.deleter.Registry = tree.NewRegistry()
	}
	if m.probe == nil {
		m.probe = storage.NewDirProbe(m.resolver.ExternalRoot)
	}
	if m.archiver == nil {
		m.archiver = archive.NewManager()
	}
	return m
}

// CleanAll cleans the internal cache, external cache, databases, shared
// preferences and files, in that order. Every step runs even when an earlier
// one failed.
func (m *DefaultManager) CleanAll(ctx context.Context) CleanupReport {
	return m.Clean(ctx, appdir.Kinds()...)
}

// Clean cleans the given targets in order and aggregates the outcome.
func (m *DefaultManager) Clean(ctx context.Context, kinds ...appdir.Kind) CleanupReport {
	var report CleanupReport
	var merr *multierror.Error

	for _, kind := range kinds {
		res := m.cleanTarget(ctx, kind)
		report.set(kind, res.OK)
		report.Targets = append(report.Targets, res)
		if res.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", kind, res.Err))
		}
	}

	report.Err = merr.ErrorOrNil()
	m.log.Info("cleanup finished", logger.Fields{
		"package": m.app.PackageName(),
		"targets": len(kinds),
		"failed":  len(report.Failed()),
	})
	return report
}

// CleanInternalCache removes the internal cache directory.
func (m *DefaultManager) CleanInternalCache(ctx context.Context) bool {
	return m.cleanTarget(ctx, appdir.KindCache).OK
}

// CleanExternalCache removes the cache directory on external storage. It
// fails without touching anything when the storage is not writable.
func (m *DefaultManager) CleanExternalCache(ctx context.Context) bool {
	return m.cleanTarget(ctx, appdir.KindExternalCache).OK
}

// CleanDatabases removes the databases directory.
func (m *DefaultManager) CleanDatabases(ctx context.Context) bool {
	return m.cleanTarget(ctx, appdir.KindDatabases).OK
}

// CleanSharedPrefs removes the shared preferences directory.
func (m *DefaultManager) CleanSharedPrefs(ctx context.Context) bool {
	return m.cleanTarget(ctx, appdir.KindSharedPrefs).OK
}

// CleanFiles removes the files directory.
func (m *DefaultManager) CleanFiles(ctx context.Context) bool {
	return m.cleanTarget(ctx, appdir.KindFiles).OK
}

// CleanCookies clears the web-view cookie jar. Store errors and panics are
// logged and reported as false.
func (m *DefaultManager) CleanCookies(_ context.Context) bool {
	cleaner := &cookies.Cleaner{
		Store:           m.cookies(),
		PlatformVersion: m.app.PlatformVersion(),
	}
	fields := logger.Fields{"package": m.app.PackageName(), "legacy_sync": cleaner.Legacy()}

	if err := cleaner.Clean(); err != nil {
		fields["error"] = err.Error()
		m.log.Warn("cookie cleanup failed", fields)
		return false
	}
	m.log.Info("cookies cleaned", fields)
	return true
}

// CleanWebCache removes the web-view database and application cache files.
// Files that do not exist count as removed.
func (m *DefaultManager) CleanWebCache(_ context.Context) bool {
	ok := true
	for _, kind := range []appdir.Kind{appdir.KindDatabases, appdir.KindCache} {
		path := filepath.Join(m.resolver.Resolve(m.app, kind).Path, WebCacheFiles[kind])
		if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if !m.deleter.DeleteFile(path) {
			ok = false
		}
	}
	m.log.Info("web cache cleanup finished", logger.Fields{"package": m.app.PackageName(), "success": ok})
	return ok
}

// CleanDatabaseByName removes one database and its journal, WAL and shared
// memory files. It reports false when the database does not exist.
func (m *DefaultManager) CleanDatabaseByName(_ context.Context, name string) bool {
	fields := logger.Fields{"package": m.app.PackageName(), "database": name}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		fields["error"] = ErrInvalidDatabaseName.Error()
		m.log.Warn("database cleanup refused", fields)
		return false
	}

	path := filepath.Join(m.resolver.DatabasesDirectory(m.app).Path, name)
	fields["path"] = path
	if _, err := os.Lstat(path); err != nil {
		fields["error"] = errors.Classify(err).Error()
		m.log.Warn("database cleanup failed", fields)
		return false
	}

	ok := m.deleter.DeleteFile(path)
	for _, suffix := range databaseCompanions {
		companion := path + suffix
		if _, err := os.Lstat(companion); err != nil {
			continue
		}
		if !m.deleter.DeleteFile(companion) {
			ok = false
		}
	}

	if ok {
		m.log.Info("database removed", fields)
	} else {
		m.log.Warn("database cleanup incomplete", fields)
	}
	return ok
}

// GetInfo reports the size of every application directory. Missing
// directories count as empty; any other failure to size a directory is
// returned.
func (m *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{PackageName: m.app.PackageName()}

	for _, kind := range appdir.Kinds() {
		loc := m.resolver.Resolve(m.app, kind)
		dir := DirInfo{Kind: kind, Path: loc.Path, Fallback: loc.Fallback}

		size, err := tree.DirectorySize(loc.Path)
		switch {
		case err == nil:
			dir.Exists = true
			dir.Size = size
		case errors.Is(err, errors.ErrNotFound):
		default:
			return nil, fmt.Errorf("%w: %s: %w", ErrCacheInfo, kind, err)
		}

		info.Dirs = append(info.Dirs, dir)
		info.TotalSize += dir.Size
	}

	info.ExternalMounted = m.probe.Mounted()
	if info.ExternalMounted {
		free, err := m.probe.AvailableBytes()
		if err != nil {
			m.log.Warn("could not read free space", logger.Fields{"error": err.Error()})
		}
		info.ExternalFree = free
	}
	return info, nil
}

// Pending returns the paths waiting for deferred deletion.
func (m *DefaultManager) Pending() []string {
	return m.deleter.Registry.Paths()
}

// FlushDeferred retries every deferred deletion and returns the paths that
// still could not be removed.
func (m *DefaultManager) FlushDeferred() []string {
	remaining := m.deleter.Registry.Flush()
	if len(remaining) > 0 {
		m.log.Warn("deferred deletions still pending", logger.Fields{"paths": remaining})
	}
	return remaining
}

func (m *DefaultManager) cleanTarget(ctx context.Context, kind appdir.Kind) TargetResult {
	loc := m.resolver.Resolve(m.app, kind)
	res := TargetResult{Kind: kind, Path: loc.Path}
	fields := logger.Fields{"package": m.app.PackageName(), "target": kind.String(), "path": loc.Path}

	if kind == appdir.KindExternalCache && !m.probe.Writable() {
		res.Err = errors.Wrap(errors.ErrUnsupported, "external storage is not mounted or not writable")
		fields["error"] = res.Err.Error()
		m.log.Warn("skipping external cache", fields)
		return res
	}

	hookCtx := hooks.HookContext{PackageName: m.app.PackageName(), Target: kind.String(), Path: loc.Path}
	m.runHook(hooks.PreClean, hookCtx)
	defer func() {
		hookCtx.Success = res.OK
		m.runHook(hooks.PostClean, hookCtx)
	}()

	if m.backupDir != "" && loc.Exists() {
		snapshot, err := m.archiver.Snapshot(ctx, m.backupDir, kind.String(), loc.Path)
		if err != nil {
			res.Err = errors.Wrap(err, "snapshot failed, directory left in place")
			fields["error"] = res.Err.Error()
			m.log.Error("snapshot failed", fields)
			return res
		}
		res.Snapshot = snapshot
		fields["snapshot"] = snapshot
	}

	size, sizeErr := tree.DirectorySize(loc.Path)
	if err := m.delete(ctx, loc.Path); err != nil {
		res.Err = err
		fields["error"] = err.Error()
		m.log.Warn("cleanup failed", fields)
		return res
	}

	res.OK = true
	if sizeErr == nil {
		res.Freed = size
	}
	fields["freed"] = res.Freed
	m.log.Info("cleaned", fields)
	return res
}

// delete removes path in-process, retrying with the native command when the
// fallback is enabled and the path still exists.
func (m *DefaultManager) delete(ctx context.Context, path string) error {
	err := m.deleter.Delete(path)
	if err == nil || !m.processFallback || errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrNotDirectory) {
		return err
	}

	m.log.Debug("retrying with native remove", logger.Fields{"path": path, "error": err.Error()})
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.processTimeout)
	defer cancel()

	if perr := m.deleter.RemoveViaProcess(ctx, path); perr != nil {
		return multierror.Append(err, perr)
	}
	return nil
}

func (m *DefaultManager) runHook(hookType hooks.HookType, ctx hooks.HookContext) {
	if m.hooks == nil {
		return
	}
	if err := m.hooks.Execute(hookType, ctx); err != nil {
		m.log.Warn("hook failed", logger.Fields{
			"hook":   string(hookType),
			"target": ctx.Target,
			"error":  err.Error(),
		})
	}
}

func (m *DefaultManager) cookies() cookies.Store {
	if m.cookieStore != nil {
		return m.cookieStore
	}
	return cookies.NewFileStore(m.resolver.DatabasesDirectory(m.app).Path, m.cookieFiles...)
}

var _ Manager = (*DefaultManager)(nil)
