package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddIgnoresDuplicates(t *testing.T) {
	r := NewRegistry()
	r.Add("/a")
	r.Add("/b")
	r.Add("/a")
	r.Add("")

	assert.Equal(t, []string{"/a", "/b"}, r.Paths())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_NilIsSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.Add("/a")
		assert.Nil(t, r.Paths())
		assert.Zero(t, r.Len())
		assert.Nil(t, r.Flush())
	})
}

func TestRegistry_Flush(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "leftover.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	sub := filepath.Join(dir, "sub")
	deep := filepath.Join(sub, "deep")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	r := NewRegistry()
	r.Add(file)
	r.Add(deep)
	r.Add(sub)
	r.Add(filepath.Join(dir, "already-gone"))

	remaining := r.Flush()

	assert.Empty(t, remaining)
	assert.Zero(t, r.Len())
	assert.NoFileExists(t, file)
	assert.NoDirExists(t, sub)
}

func TestRegistry_Flush_KeepsNonEmptyDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	keep := filepath.Join(sub, "deep", "keep.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(keep), 0o755))
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0o644))

	r := NewRegistry()
	r.Add(sub)

	assert.Equal(t, []string{sub}, r.Flush())
	assert.Equal(t, []string{sub}, r.Paths())
	assert.FileExists(t, keep)
}

func TestRegistry_Flush_AfterShallowDelete(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "sub", "deep", "keep.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(keep), 0o755))
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0o644))

	d := NewDeleter(WithRecursive(false))
	require.Error(t, d.Delete(root))

	remaining := d.Registry.Flush()

	assert.Equal(t, []string{filepath.Join(root, "sub"), root}, remaining)
	assert.FileExists(t, keep)
}

func TestRegistry_ConcurrentAdd(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Add(fmt.Sprintf("/p/%d/%d", i, j%25))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16*25, r.Len())
}
