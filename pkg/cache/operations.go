package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cperrin88/appclean/pkg/appdir"
)

// Operation renders Manager results as human-readable text.
type Operation struct {
	manager Manager
}

// NewOperation creates a new Operation.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// Clean cleans the given targets, or all of them when none are given, and
// describes the outcome. The returned error wraps ErrCacheClean when any
// target failed; the message is filled in either way.
func (op *Operation) Clean(ctx context.Context, kinds ...appdir.Kind) (string, error) {
	var report CleanupReport
	if len(kinds) == 0 {
		report = op.manager.CleanAll(ctx)
	} else {
		report = op.manager.Clean(ctx, kinds...)
	}

	var b strings.Builder
	if report.OK() {
		fmt.Fprintf(&b, "Successfully cleaned %d target(s). Freed %s.", len(report.Targets), humanize.Bytes(uint64(report.Freed())))
	} else {
		fmt.Fprintf(&b, "Cleaned %d of %d target(s). Freed %s.",
			len(report.Targets)-len(report.Failed()), len(report.Targets), humanize.Bytes(uint64(report.Freed())))
	}
	for _, t := range report.Targets {
		switch {
		case t.OK && t.Snapshot != "":
			fmt.Fprintf(&b, "\n- %s: %s (snapshot %s)", t.Kind, humanize.Bytes(uint64(t.Freed)), t.Snapshot)
		case t.OK:
			fmt.Fprintf(&b, "\n- %s: %s", t.Kind, humanize.Bytes(uint64(t.Freed)))
		default:
			fmt.Fprintf(&b, "\n- %s: failed: %v", t.Kind, t.Err)
		}
	}

	if !report.OK() {
		return b.String(), fmt.Errorf("%w: %w", ErrCacheClean, report.Err)
	}
	return b.String(), nil
}

// GetInfo describes the disk usage of the application.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Application: %s\n", info.PackageName)
	for _, d := range info.Dirs {
		size := humanize.Bytes(uint64(d.Size))
		if !d.Exists {
			size = "missing"
		}
		fmt.Fprintf(&b, "  %-15s %-10s %s\n", d.Kind.String()+":", size, d.Path)
	}
	fmt.Fprintf(&b, "  %-15s %s", "total:", humanize.Bytes(uint64(info.TotalSize)))
	if info.ExternalMounted {
		fmt.Fprintf(&b, "\n  %-15s %s", "external free:", humanize.Bytes(uint64(info.ExternalFree)))
	} else {
		fmt.Fprintf(&b, "\n  %-15s %s", "external free:", "not mounted")
	}
	return b.String(), nil
}
