package cache

import (
	"context"

	"github.com/cperrin88/appclean/pkg/appdir"
)

// Manager defines the cleanup operations available for one application.
// Every Clean* method reports success as a boolean and logs failures; none
// of them panics or returns an error to the caller.
type Manager interface {
	CleanAll(ctx context.Context) CleanupReport
	Clean(ctx context.Context, kinds ...appdir.Kind) CleanupReport
	CleanInternalCache(ctx context.Context) bool
	CleanExternalCache(ctx context.Context) bool
	CleanDatabases(ctx context.Context) bool
	CleanSharedPrefs(ctx context.Context) bool
	CleanFiles(ctx context.Context) bool
	CleanCookies(ctx context.Context) bool
	CleanWebCache(ctx context.Context) bool
	CleanDatabaseByName(ctx context.Context, name string) bool
	GetInfo() (*Info, error)
}

// TargetResult is the outcome of cleaning one directory.
type TargetResult struct {
	Kind appdir.Kind
	Path string
	OK   bool
	// Freed is the size of the directory before it was removed. It is zero
	// when the removal failed.
	Freed int64
	// Snapshot is the archive written before deletion, if any.
	Snapshot string
	Err      error
}

// CleanupReport aggregates the outcome of several cleanup targets. The
// boolean fields are only meaningful for targets that were requested.
type CleanupReport struct {
	InternalCache bool
	ExternalCache bool
	Databases     bool
	SharedPrefs   bool
	Files         bool

	Targets []TargetResult
	// Err joins the errors of every failed target.
	Err error
}

// OK reports whether every requested target was cleaned.
func (r CleanupReport) OK() bool {
	if len(r.Targets) == 0 {
		return false
	}
	for _, t := range r.Targets {
		if !t.OK {
			return false
		}
	}
	return true
}

// Failed lists the targets that could not be cleaned, in cleanup order.
func (r CleanupReport) Failed() []appdir.Kind {
	var failed []appdir.Kind
	for _, t := range r.Targets {
		if !t.OK {
			failed = append(failed, t.Kind)
		}
	}
	return failed
}

// Freed sums the bytes freed by every successful target.
func (r CleanupReport) Freed() int64 {
	var total int64
	for _, t := range r.Targets {
		total += t.Freed
	}
	return total
}

func (r *CleanupReport) set(kind appdir.Kind, ok bool) {
	switch kind {
	case appdir.KindCache:
		r.InternalCache = ok
	case appdir.KindExternalCache:
		r.ExternalCache = ok
	case appdir.KindDatabases:
		r.Databases = ok
	case appdir.KindSharedPrefs:
		r.SharedPrefs = ok
	case appdir.KindFiles:
		r.Files = ok
	}
}

// DirInfo describes one application directory.
type DirInfo struct {
	Kind     appdir.Kind
	Path     string
	Fallback bool
	Exists   bool
	Size     int64
}

// Info represents the disk usage of an application.
type Info struct {
	PackageName string
	Dirs        []DirInfo
	TotalSize   int64
	// ExternalMounted tells whether ExternalFree is meaningful.
	ExternalMounted bool
	ExternalFree    int64
}
