package tree

import (
	"io/fs"
	"os"
	"sync"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Registry remembers paths that could not be removed so they can be retried
// at a controlled shutdown point. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	paths []string
	seen  map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add schedules path for deferred deletion. Duplicates are ignored.
func (r *Registry) Add(path string) {
	if r == nil || path == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[path]; ok {
		return
	}
	r.seen[path] = struct{}{}
	r.paths = append(r.paths, path)
}

// Paths returns the pending paths in registration order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Len returns the number of pending paths.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// Flush retries every pending path in registration order and returns those
// that still could not be removed. Those remain registered. Each path gets a
// single remove, so a directory only goes once it is empty; deleters register
// children before their parent. A path that no longer exists counts as
// removed.
func (r *Registry) Flush() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var remaining []string
	seen := make(map[string]struct{})
	for _, path := range r.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			remaining = append(remaining, path)
			seen[path] = struct{}{}
		}
	}
	r.paths = remaining
	r.seen = seen

	out := make([]string, len(remaining))
	copy(out, remaining)
	return out
}
