package cli

import (
	"fmt"
	"io"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/cache"
	"github.com/cperrin88/appclean/pkg/config"
	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/hooks"
	"github.com/cperrin88/appclean/pkg/logger"
	"github.com/cperrin88/appclean/pkg/transfer"
	"github.com/cperrin88/appclean/pkg/tree"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// deferred collects paths that could not be removed during this run. Every
// deleter and copier built by the commands shares it so a single flush at
// exit retries them all.
var deferred = tree.NewRegistry()

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if NoColor != nil && *NoColor {
		cfg.Settings.NoColor = true
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	return cfg, nil
}

func getConfigPath() (string, error) {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath, nil
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get default config path: %w", err)
	}
	return defaultPath, nil
}

func newDeleter(cfg *config.Config, log logger.Sink) *tree.Deleter {
	return tree.NewDeleter(
		tree.WithRecursive(cfg.Settings.Recursive()),
		tree.WithRegistry(deferred),
		tree.WithLogger(log),
	)
}

func newCopier(cfg *config.Config, log logger.Sink) *transfer.Copier {
	return transfer.NewCopier(
		transfer.WithChunkSize(cfg.Settings.ChunkSize),
		transfer.WithRegistry(deferred),
		transfer.WithLogger(log),
	)
}

// newCacheManager wires a cache manager for the configured application.
func newCacheManager(cfg *config.Config, log logger.Sink) (*cache.DefaultManager, error) {
	if cfg.App.PackageName == "" {
		return nil, fmt.Errorf("%w: set app.package_name in the config file", errors.ErrEmptyPackageName)
	}

	hookManager := hooks.NewHookManager()
	if err := hooks.LoadScripts(hookManager, cfg.HookScripts()); err != nil {
		return nil, fmt.Errorf("failed to load hooks: %w", err)
	}

	return cache.NewManager(cfg.AppContext(),
		cache.WithResolver(cfg.Resolver()),
		cache.WithDeleter(newDeleter(cfg, log)),
		cache.WithCookieFiles(cfg.App.CookieFiles...),
		cache.WithHooks(hookManager),
		cache.WithBackupDir(cfg.Settings.BackupDir),
		cache.WithProcessFallback(cfg.Settings.ProcessFallback),
		cache.WithProcessTimeout(cfg.Settings.ProcessTimeout),
		cache.WithLogger(log),
	), nil
}

// resolve returns the configured location of kind.
func resolve(cfg *config.Config, kind string) (appdir.Location, error) {
	k, err := appdir.ParseKind(kind)
	if err != nil {
		return appdir.Location{}, err
	}
	return cfg.Resolver().Resolve(cfg.AppContext(), k), nil
}

// FlushDeferred retries every deletion deferred during this run and reports
// what is still left to w.
func FlushDeferred(w io.Writer) []string {
	remaining := deferred.Flush()
	for _, path := range remaining {
		_, _ = fmt.Fprintf(w, "Warning: could not remove %s\n", path)
	}
	return remaining
}
