package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteConfig writes a config file whose roots point at the app's temporary
// layout and returns its path. settings is appended verbatim below the
// settings: key and may be empty.
func (a *App) WriteConfig(t *testing.T, settings string) string {
	t.Helper()

	content := fmt.Sprintf(`app:
  package_name: %s
  data_root: %s
  external_storage_root: %s
settings:
  log_level: debug
  no_color: true
%s`, a.Context.PackageName(), a.DataRoot, a.ExternalRoot, settings)

	path := filepath.Join(filepath.Dir(a.DataRoot), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config %s: %v", path, err)
	}
	return path
}
