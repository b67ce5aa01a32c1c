package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{name: "nil error stays nil", err: nil, msg: "deleting cache"},
		{name: "adds context", err: errors.New("busy"), msg: "deleting cache", expected: "deleting cache: busy"},
		{name: "empty message", err: errors.New("busy"), msg: "", expected: ": busy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			assert.EqualError(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	base := errors.New("denied")

	assert.NoError(t, Wrapf(nil, "copying %s", "a.txt"))

	wrapped := Wrapf(base, "copying %s to %s", "a.txt", "b.txt")
	assert.EqualError(t, wrapped, "copying a.txt to b.txt: denied")
	assert.ErrorIs(t, wrapped, base)
}

func TestClassify(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, statErr := os.Stat(missing)
	require.Error(t, statErr)

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "stat on missing file", err: statErr, sentinel: ErrNotFound},
		{name: "wrapped not exist", err: fmt.Errorf("open: %w", fs.ErrNotExist), sentinel: ErrNotFound},
		{name: "permission", err: &fs.PathError{Op: "unlink", Path: "/x", Err: fs.ErrPermission}, sentinel: ErrPermissionDenied},
		{name: "busy", err: &fs.PathError{Op: "unlink", Path: "/x", Err: syscall.EBUSY}, sentinel: ErrPermissionDenied},
		{name: "already classified", err: Wrap(ErrPartialFailure, "cache"), sentinel: ErrPartialFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.err)
			assert.ErrorIs(t, classified, tt.sentinel)
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, Classify(nil))

	other := errors.New("disk on fire")
	assert.Same(t, other, Classify(other))
}
