// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/cperrin88/appclean/pkg/appdir"
)

// WriteTree creates files below root. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// ListTree returns every path below root, slash-separated and sorted.
// Directories carry a trailing "/".
func ListTree(t *testing.T, root string) []string {
	t.Helper()

	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	sort.Strings(out)
	return out
}

// AssertMissing fails the test when path exists.
func AssertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s to be gone", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Unexpected error checking %s: %v", path, err)
	}
}

// App is an application data layout rooted in a temporary directory.
type App struct {
	Context      *appdir.StaticContext
	DataRoot     string
	ExternalRoot string
}

// NewApp creates a StaticContext for pkg whose reported directories live in
// a fresh temporary data root. Directories are not created.
func NewApp(t *testing.T, pkg string) *App {
	t.Helper()

	base := t.TempDir()
	dataRoot := filepath.Join(base, "data")
	externalRoot := filepath.Join(base, "sdcard")
	appRoot := filepath.Join(dataRoot, pkg)

	ctx := appdir.NewStaticContext(pkg)
	for _, kind := range appdir.Kinds() {
		if kind == appdir.KindExternalCache {
			ctx.WithDir(kind, filepath.Join(externalRoot, "Android", "data", pkg, "cache"))
			continue
		}
		ctx.WithDir(kind, filepath.Join(appRoot, kind.Subdir()))
	}

	return &App{Context: ctx, DataRoot: dataRoot, ExternalRoot: externalRoot}
}

// Dir returns the reported directory for kind.
func (a *App) Dir(kind appdir.Kind) string {
	return a.Context.Dir(kind)
}

// Populate writes files into the directory for kind.
func (a *App) Populate(t *testing.T, kind appdir.Kind, files map[string]string) {
	t.Helper()
	WriteTree(t, a.Dir(kind), files)
}
