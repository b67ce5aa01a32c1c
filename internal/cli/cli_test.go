package cli

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/cache"
	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/test/testutil"
)

const pkgName = "com.example.app"

// execute runs cmd against the config at cfgPath and returns its stdout and
// stderr.
func execute(t *testing.T, cfgPath string, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()

	path := cfgPath
	ConfigPath = &path
	t.Cleanup(func() { ConfigPath = nil })

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func populateAll(t *testing.T, app *testutil.App) {
	t.Helper()
	app.Populate(t, appdir.KindCache, map[string]string{"img/a.png": "aaaa"})
	app.Populate(t, appdir.KindExternalCache, map[string]string{"b.bin": "bb"})
	app.Populate(t, appdir.KindDatabases, map[string]string{"main.db": "db"})
	app.Populate(t, appdir.KindSharedPrefs, map[string]string{"prefs.xml": "<map/>"})
	app.Populate(t, appdir.KindFiles, map[string]string{"notes/n.txt": "n"})
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantKinds  []appdir.Kind
		wantExtras []string
		wantErr    bool
	}{
		{name: "no args cleans every directory", args: nil, wantKinds: appdir.Kinds()},
		{name: "all", args: []string{"all"}, wantKinds: appdir.Kinds()},
		{name: "aliases keep order", args: []string{"prefs", "cache"}, wantKinds: []appdir.Kind{appdir.KindSharedPrefs, appdir.KindCache}},
		{name: "duplicates collapse", args: []string{"db", "databases"}, wantKinds: []appdir.Kind{appdir.KindDatabases}},
		{name: "extras", args: []string{"cookies", "webcache"}, wantExtras: []string{"cookies", "webcache"}},
		{name: "unknown target", args: []string{"downloads"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds, extras, err := parseTargets(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrUnknownTargetKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKinds, kinds)
			assert.Equal(t, tt.wantExtras, extras)
		})
	}
}

func TestCleanCmd_All(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	populateAll(t, app)
	cfgPath := app.WriteConfig(t, "")

	stdout, stderr, err := execute(t, cfgPath, NewCleanCmd(), "")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Successfully cleaned 5 target(s)")
	assert.Contains(t, stderr, "cleanup finished")
	for _, kind := range appdir.Kinds() {
		testutil.AssertMissing(t, app.Dir(kind))
	}
}

func TestCleanCmd_Subset(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	populateAll(t, app)
	cfgPath := app.WriteConfig(t, "")

	stdout, _, err := execute(t, cfgPath, NewCleanCmd(), "", "cache", "prefs")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Successfully cleaned 2 target(s)")
	testutil.AssertMissing(t, app.Dir(appdir.KindCache))
	testutil.AssertMissing(t, app.Dir(appdir.KindSharedPrefs))
	assert.DirExists(t, app.Dir(appdir.KindDatabases))
	assert.DirExists(t, app.Dir(appdir.KindFiles))
}

func TestCleanCmd_ReportsFailure(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindCache, map[string]string{"a": "1"})
	cfgPath := app.WriteConfig(t, "")

	stdout, _, err := execute(t, cfgPath, NewCleanCmd(), "", "cache", "files")
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrCacheClean)
	assert.Contains(t, stdout, "Cleaned 1 of 2 target(s)")
	testutil.AssertMissing(t, app.Dir(appdir.KindCache))
}

func TestCleanCmd_CookiesAndWebCache(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindDatabases, map[string]string{
		"webviewCookiesChromium.db": "c",
		"webview.db":                "w",
		"keep.db":                   "k",
	})
	app.Populate(t, appdir.KindCache, map[string]string{"ApplicationCache.db": "a"})
	cfgPath := app.WriteConfig(t, "")

	stdout, _, err := execute(t, cfgPath, NewCleanCmd(), "", "cookies", "webcache")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cleaned cookies.")
	assert.Contains(t, stdout, "Cleaned webcache.")
	assert.Equal(t, []string{"keep.db"}, testutil.ListTree(t, app.Dir(appdir.KindDatabases)))
	assert.Empty(t, testutil.ListTree(t, app.Dir(appdir.KindCache)))
}

func TestCleanCmd_Database(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindDatabases, map[string]string{
		"main.db":         "m",
		"main.db-journal": "j",
		"other.db":        "o",
	})
	cfgPath := app.WriteConfig(t, "")

	stdout, _, err := execute(t, cfgPath, NewCleanCmd(), "", "db", "main.db")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted database main.db")
	assert.Equal(t, []string{"other.db"}, testutil.ListTree(t, app.Dir(appdir.KindDatabases)))

	_, _, err = execute(t, cfgPath, NewCleanCmd(), "", "db", "../escape.db")
	assert.ErrorIs(t, err, cache.ErrCacheClean)
}

func TestCleanCmd_RequiresPackageName(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("settings:\n  log_level: info\n"), 0o600))

	_, _, err := execute(t, cfgPath, NewCleanCmd(), "")
	assert.ErrorIs(t, err, errors.ErrEmptyPackageName)
}

func TestCleanCmd_WithBackupDir(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindFiles, map[string]string{"a.txt": "hello"})
	backupDir := filepath.Join(t.TempDir(), "backups")
	cfgPath := app.WriteConfig(t, "  backup_dir: "+backupDir+"\n")

	stdout, _, err := execute(t, cfgPath, NewCleanCmd(), "", "files")
	require.NoError(t, err)

	assert.Contains(t, stdout, "snapshot")
	testutil.AssertMissing(t, app.Dir(appdir.KindFiles))

	snapshots, err := filepath.Glob(filepath.Join(backupDir, "files-*.tar.gz"))
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

func TestInfoAndDirCmd(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindCache, map[string]string{"a": "1234"})
	cfgPath := app.WriteConfig(t, "")

	stdout, _, err := execute(t, cfgPath, NewInfoCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Application: "+pkgName)
	assert.Contains(t, stdout, "4 B")
	assert.Contains(t, stdout, "missing")

	stdout, _, err = execute(t, cfgPath, NewDirCmd(), "", "databases")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(app.Dir(appdir.KindDatabases)), filepath.Clean(strings.TrimSpace(stdout)))

	_, _, err = execute(t, cfgPath, NewDirCmd(), "", "downloads")
	assert.ErrorIs(t, err, errors.ErrUnknownTargetKind)
}

func TestCopyMoveSaveCmd(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	cfgPath := app.WriteConfig(t, "")
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	copied := filepath.Join(dir, "copy", "dst.txt")
	_, _, err := execute(t, cfgPath, NewCopyCmd(), "", src, copied)
	require.NoError(t, err)
	assert.FileExists(t, src)
	data, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	moved := filepath.Join(dir, "moved", "dst.txt")
	_, _, err = execute(t, cfgPath, NewMoveCmd(), "", copied, moved)
	require.NoError(t, err)
	testutil.AssertMissing(t, copied)
	assert.FileExists(t, moved)

	saved := filepath.Join(dir, "saved", "stdin.txt")
	_, _, err = execute(t, cfgPath, NewSaveCmd(), "from stdin", saved)
	require.NoError(t, err)
	data, err = os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	stdout, _, err := execute(t, cfgPath, NewSaveCmd(), "FROM STDIN", "--skip-same-size", saved)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")
	data, err = os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	_, _, err = execute(t, cfgPath, NewCopyCmd(), "", filepath.Join(dir, "absent"), copied)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestEncodingCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "absent.yaml")

	bom := filepath.Join(dir, "bom.txt")
	require.NoError(t, os.WriteFile(bom, []byte("\xEF\xBB\xBFhello"), 0o644))
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><head><meta charset="UTF-8"></head></html>`), 0o644))

	stdout, _, err := execute(t, cfgPath, NewEncodingCmd(), "", bom)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", strings.TrimSpace(stdout))

	stdout, _, err = execute(t, cfgPath, NewEncodingCmd(), "", "--decode", bom)
	require.NoError(t, err)
	assert.Equal(t, "hello", stdout)

	stdout, _, err = execute(t, cfgPath, NewEncodingCmd(), "", page)
	require.NoError(t, err)
	assert.Equal(t, "GBK", strings.TrimSpace(stdout))

	stdout, _, err = execute(t, cfgPath, NewEncodingCmd(), "", "--html", page)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", strings.TrimSpace(stdout))
}

func TestRemoveCmd(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	cfgPath := app.WriteConfig(t, "")
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"tree/a/b.txt": "b",
		"tree/c.txt":   "c",
		"single.txt":   "s",
	})

	stdout, _, err := execute(t, cfgPath, NewRemoveCmd(), "", filepath.Join(dir, "tree"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed")
	testutil.AssertMissing(t, filepath.Join(dir, "tree"))

	_, _, err = execute(t, cfgPath, NewRemoveCmd(), "", filepath.Join(dir, "single.txt"))
	require.NoError(t, err)
	testutil.AssertMissing(t, filepath.Join(dir, "single.txt"))

	_, _, err = execute(t, cfgPath, NewRemoveCmd(), "", filepath.Join(dir, "absent"))
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestRemoveCmd_LockedFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions do not prevent deletion on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	app := testutil.NewApp(t, pkgName)
	cfgPath := app.WriteConfig(t, "")
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	testutil.WriteTree(t, locked, map[string]string{"keep.txt": "k"})
	require.NoError(t, os.Chmod(locked, 0o500))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	file := filepath.Join(locked, "keep.txt")
	_, _, err := execute(t, cfgPath, NewRemoveCmd(), "", file)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.FileExists(t, file)
	assert.Contains(t, deferred.Paths(), file)
}

func TestBackupRestoreCmd(t *testing.T) {
	app := testutil.NewApp(t, pkgName)
	app.Populate(t, appdir.KindSharedPrefs, map[string]string{
		"settings.xml":   "<map/>",
		"nested/tag.xml": "<tag/>",
	})
	cfgPath := app.WriteConfig(t, "")
	archivePath := filepath.Join(t.TempDir(), "prefs.tar.gz")

	_, _, err := execute(t, cfgPath, NewBackupCmd(), "", "prefs", archivePath)
	require.NoError(t, err)
	assert.FileExists(t, archivePath)

	require.NoError(t, os.RemoveAll(app.Dir(appdir.KindSharedPrefs)))

	_, _, err = execute(t, cfgPath, NewRestoreCmd(), "", "--file", "settings.xml", archivePath, "prefs")
	require.NoError(t, err)
	assert.Equal(t, []string{"settings.xml"}, testutil.ListTree(t, app.Dir(appdir.KindSharedPrefs)))

	_, _, err = execute(t, cfgPath, NewRestoreCmd(), "", archivePath, "prefs")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested/", "nested/tag.xml", "settings.xml"}, testutil.ListTree(t, app.Dir(appdir.KindSharedPrefs)))

	_, _, err = execute(t, cfgPath, NewRestoreCmd(), "", "--file", "../evil", archivePath, "prefs")
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "appclean", "config.yaml")

	_, _, err := execute(t, cfgPath, NewConfigCmd(), "", "init", "--package", pkgName)
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, _, err = execute(t, cfgPath, NewConfigCmd(), "", "init")
	assert.Error(t, err)

	_, _, err = execute(t, cfgPath, NewConfigCmd(), "", "set", "chunk_size", "16384")
	require.NoError(t, err)

	_, _, err = execute(t, cfgPath, NewConfigCmd(), "", "set", "chunk_size", "10")
	assert.ErrorIs(t, err, errors.ErrInvalidChunkSize)

	stdout, _, err := execute(t, cfgPath, NewConfigCmd(), "", "get", "chunk_size")
	require.NoError(t, err)
	assert.Equal(t, "16384", strings.TrimSpace(stdout))

	stdout, _, err = execute(t, cfgPath, NewConfigCmd(), "", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "package_name")
	assert.Contains(t, stdout, pkgName)

	stdout, _, err = execute(t, cfgPath, NewConfigCmd(), "", "show", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "chunk_size: 16384")

	_, _, err = execute(t, cfgPath, NewConfigCmd(), "", "get", "colour")
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
}

func TestHooksTemplateCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "absent.yaml")

	stdout, _, err := execute(t, cfgPath, NewHooksCmd(), "", "template", "pre-clean")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pre-clean hook")

	out := filepath.Join(t.TempDir(), "hooks", "post.tengo")
	_, _, err = execute(t, cfgPath, NewHooksCmd(), "", "template", "post-clean", "-o", out)
	require.NoError(t, err)
	assert.FileExists(t, out)

	_, _, err = execute(t, cfgPath, NewHooksCmd(), "", "template", "on-install")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", NewVersionCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "appclean version "+Version)
}

func TestFlushDeferred(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"late/x": "x"})
	deferred.Add(filepath.Join(dir, "late", "x"))
	deferred.Add(filepath.Join(dir, "late"))

	var buf bytes.Buffer
	remaining := FlushDeferred(&buf)
	assert.Empty(t, remaining)
	assert.Empty(t, buf.String())
	testutil.AssertMissing(t, filepath.Join(dir, "late"))
}
