package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/appclean/pkg/errors"
)

// HookFileExtension is the extension of hook scripts found in a directory.
const HookFileExtension = ".tengo"

// LoadScripts reads each configured script file and registers it with
// manager. Empty paths are skipped.
func LoadScripts(manager HookManager, scripts map[HookType]string) error {
	for hookType := range scripts {
		if !hookType.Valid() {
			return ErrUnsupportedHookEvent(string(hookType))
		}
	}
	for _, hookType := range Types() {
		path := scripts[hookType]
		if path == "" {
			continue
		}
		if err := loadFile(manager, hookType, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadHooksFromDir registers every <hook-type>.tengo script found in dir.
// A missing directory is not an error and unknown names are skipped.
func LoadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != HookFileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), HookFileExtension))
		if !hookType.Valid() {
			continue
		}
		if err := loadFile(manager, hookType, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(manager HookManager, hookType HookType, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(ErrHookLoad, "%s: %v", path, err)
	}
	if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
		return errors.Wrapf(err, "error adding hook %s", hookType)
	}
	return nil
}

// HookTemplate generates a template for a hook script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreClean:
		return `// Pre-clean hook
// This script runs before a directory is cleaned.
// Available variables:
// - packageName: string - application package
// - target: string - cleanup target (cache, external_cache, databases, ...)
// - path: string - directory about to be cleaned
// Assign a message to err to log a warning; cleaning continues.

// Example: warn about an unexpected location
/*
text := import("text")
if !text.has_prefix(path, "/data/") {
    err = "unexpected path: " + path
}
*/`

	case PostClean:
		return `// Post-clean hook
// This script runs after a directory was cleaned.
// Available variables: same as the pre-clean hook, plus
// - success: bool - whether the directory was removed

// Example: report failures
/*
fmt := import("fmt")
if !success {
    fmt.println("could not clean ", target, " at ", path)
}
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
