//go:generate mockgen -destination=mocks/storage.go . Probe

// Package storage reports the state of external storage. Callers inject a
// Probe so the cache manager never has to reach into platform internals.
package storage

import (
	"os"
	"path/filepath"
)

// Probe answers questions about an external storage volume.
type Probe interface {
	// Mounted reports whether the volume is present and readable.
	Mounted() bool
	// Writable reports whether files can currently be created on the volume.
	Writable() bool
	// AvailableBytes returns the free space usable by the application.
	AvailableBytes() (int64, error)
}

// DirProbe probes a mount point on the local filesystem.
type DirProbe struct {
	Root string
}

// NewDirProbe creates a DirProbe for root.
func NewDirProbe(root string) *DirProbe {
	return &DirProbe{Root: root}
}

// Mounted implements Probe.
func (p *DirProbe) Mounted() bool {
	if p.Root == "" {
		return false
	}
	f, err := os.Open(p.Root)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	return err == nil && info.IsDir()
}

// Writable implements Probe by creating and removing a scratch file.
func (p *DirProbe) Writable() bool {
	if !p.Mounted() {
		return false
	}
	f, err := os.CreateTemp(p.Root, ".appclean-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name)) == nil
}

// AvailableBytes implements Probe.
func (p *DirProbe) AvailableBytes() (int64, error) {
	return diskFreeSpace(p.Root)
}

// Static is a Probe with fixed answers.
type Static struct {
	IsMounted  bool
	IsWritable bool
	Free       int64
}

// Mounted implements Probe.
func (s Static) Mounted() bool { return s.IsMounted }

// Writable implements Probe.
func (s Static) Writable() bool { return s.IsMounted && s.IsWritable }

// AvailableBytes implements Probe.
func (s Static) AvailableBytes() (int64, error) { return s.Free, nil }

var (
	_ Probe = (*DirProbe)(nil)
	_ Probe = Static{}
)
