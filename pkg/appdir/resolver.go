// Package appdir computes where an application keeps its cache, files,
// databases and shared preferences.
package appdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDataRoot is where per-package data directories live on Android.
	DefaultDataRoot = "/data/data"
	// DefaultExternalRoot is the usual external storage mount point.
	DefaultExternalRoot = "/sdcard"
)

// Location is a resolved directory tagged with its kind. It is recomputed on
// every call and never persisted.
type Location struct {
	Path string
	Kind Kind
	// Fallback is set when Path was synthesized rather than reported.
	Fallback bool
}

// Exists reports whether the location is an existing directory.
func (l Location) Exists() bool {
	info, err := os.Stat(l.Path)
	return err == nil && info.IsDir()
}

// String returns the path.
func (l Location) String() string {
	return l.Path
}

// Resolver turns a Context into concrete directory locations.
type Resolver struct {
	DataRoot     string
	ExternalRoot string
}

// NewResolver creates a Resolver. Empty roots take the Android defaults.
func NewResolver(dataRoot, externalRoot string) *Resolver {
	if dataRoot == "" {
		dataRoot = DefaultDataRoot
	}
	if externalRoot == "" {
		externalRoot = DefaultExternalRoot
	}
	return &Resolver{DataRoot: dataRoot, ExternalRoot: externalRoot}
}

// Resolve returns the directory for kind. It never fails: when the platform
// reports nothing, a path is synthesized that may not exist on disk.
func (r *Resolver) Resolve(ctx Context, kind Kind) Location {
	if dir := ctx.Dir(kind); dir != "" {
		return Location{Path: dir, Kind: kind}
	}
	return Location{Path: r.fallback(ctx.PackageName(), kind), Kind: kind, Fallback: true}
}

// CacheDirectory returns the internal cache directory.
func (r *Resolver) CacheDirectory(ctx Context) Location {
	return r.Resolve(ctx, KindCache)
}

// FilesDirectory returns the files directory.
func (r *Resolver) FilesDirectory(ctx Context) Location {
	return r.Resolve(ctx, KindFiles)
}

// DatabasesDirectory returns the databases directory.
func (r *Resolver) DatabasesDirectory(ctx Context) Location {
	return r.Resolve(ctx, KindDatabases)
}

// SharedPrefsDirectory returns the shared preferences directory.
func (r *Resolver) SharedPrefsDirectory(ctx Context) Location {
	return r.Resolve(ctx, KindSharedPrefs)
}

// ExternalCacheDirectory returns the cache directory on external storage.
func (r *Resolver) ExternalCacheDirectory(ctx Context) Location {
	return r.Resolve(ctx, KindExternalCache)
}

// fallback builds <data-root>/<pkg>/<sub>/ or, for the external cache,
// <external-root>/Android/data/<pkg>/cache/. The trailing separator is kept.
func (r *Resolver) fallback(pkg string, kind Kind) string {
	var dir string
	if kind == KindExternalCache {
		dir = filepath.Join(r.externalRoot(), "Android", "data", pkg, kind.Subdir())
	} else {
		dir = filepath.Join(r.dataRoot(), pkg, kind.Subdir())
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir
}

func (r *Resolver) dataRoot() string {
	if r.DataRoot == "" {
		return DefaultDataRoot
	}
	return r.DataRoot
}

func (r *Resolver) externalRoot() string {
	if r.ExternalRoot == "" {
		return DefaultExternalRoot
	}
	return r.ExternalRoot
}
