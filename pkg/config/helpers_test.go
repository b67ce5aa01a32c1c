package config

import (
	"testing"
	"time"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetValue(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{key: "package_name", value: "com.example.app", expected: "com.example.app"},
		{key: "data_root", value: "/tmp/data", expected: "/tmp/data"},
		{key: "log_level", value: "DEBUG", expected: "debug"},
		{key: "no_color", value: "true", expected: "true"},
		{key: "chunk_size", value: "8192", expected: "8192"},
		{key: "recursive_delete", value: "false", expected: "false"},
		{key: "process_fallback", value: "1", expected: "true"},
		{key: "process_timeout", value: "90s", expected: "1m30s"},
		{key: "backup_dir", value: "/tmp/backups", expected: "/tmp/backups"},
		{key: "post_clean", value: "/tmp/post.tengo", expected: "/tmp/post.tengo"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.SetValue(tt.key, tt.value))

			got, err := cfg.GetValue(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSetValue_Invalid(t *testing.T) {
	cfg := DefaultConfig()

	assert.ErrorIs(t, cfg.SetValue("colour", "on"), errors.ErrUnknownConfigKey)
	assert.Error(t, cfg.SetValue("no_color", "maybe"))
	assert.Error(t, cfg.SetValue("chunk_size", "big"))
	assert.Error(t, cfg.SetValue("process_timeout", "soon"))

	assert.Equal(t, 2*time.Minute, cfg.Settings.ProcessTimeout)

	_, err := cfg.GetValue("colour")
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
}

func TestToMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.App.PackageName = "com.example.app"

	m := cfg.ToMap()
	assert.Len(t, m, len(Keys()))
	assert.Equal(t, "com.example.app", m["package_name"])
	assert.Equal(t, "10240", m["chunk_size"])
	assert.Equal(t, "true", m["recursive_delete"])
}
