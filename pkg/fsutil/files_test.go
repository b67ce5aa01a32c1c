package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files", "nested", "notes.txt")

	require.NoError(t, CreateFile(path))
	assert.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("keep me"), FileModeDefault))
	require.NoError(t, CreateFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content), "existing file must not be truncated")

	assert.ErrorIs(t, CreateFile(""), errors.ErrEmptyPath)
}

func TestCreateFilePerm(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on Windows")
	}
	testFile := filepath.Join(t.TempDir(), "secret.db")

	file, err := CreateFilePerm(testFile, FileModeSecure)
	require.NoError(t, err)
	_, err = file.WriteString("payload")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	info, err := os.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModeSecure), info.Mode().Perm()&os.FileMode(FileModeSecure))
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/sdcard/Download/photo.jpg", "photo.jpg"},
		{"archive.tar.gz", "archive.tar.gz"},
		{"/data/data/com.example/files/", ""},
		{"/data/data/com.example/files/README", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractName(tt.path))
		})
	}
}

func TestExtractSuffix(t *testing.T) {
	assert.Equal(t, "jpg", ExtractSuffix("/sdcard/photo.jpg"))
	assert.Equal(t, "gz", ExtractSuffix("backup.tar.gz"))
	assert.Equal(t, "Makefile", ExtractSuffix("Makefile"))
}
