// Package config provides configuration management for appclean.
// It handles loading, validating and saving the YAML file that names the
// application to manage, where its directories live and how cleanup behaves.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
	"github.com/cperrin88/appclean/pkg/hooks"
	"github.com/cperrin88/appclean/pkg/transfer"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// App describes the application whose data is managed
	App AppConfig `yaml:"app"`

	// General settings
	Settings Settings `yaml:"settings"`

	// Hook scripts run around each cleanup target
	Hooks HooksConfig `yaml:"hooks,omitempty"`
}

// AppConfig identifies the application and overrides its directories.
// Empty directory fields are synthesized from DataRoot and the package name.
type AppConfig struct {
	PackageName string `yaml:"package_name"`
	DataRoot    string `yaml:"data_root"`

	CacheDir         string `yaml:"cache_dir,omitempty"`
	FilesDir         string `yaml:"files_dir,omitempty"`
	DatabasesDir     string `yaml:"databases_dir,omitempty"`
	SharedPrefsDir   string `yaml:"shared_prefs_dir,omitempty"`
	ExternalCacheDir string `yaml:"external_cache_dir,omitempty"`

	ExternalStorageRoot string `yaml:"external_storage_root"`

	// PlatformVersion is the OS release, e.g. "4.4"
	PlatformVersion string `yaml:"platform_version,omitempty"`

	// CookieFiles are relative to the databases directory
	CookieFiles []string `yaml:"cookie_files,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Output settings
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	NoColor  bool   `yaml:"no_color"`

	// Transfer settings
	ChunkSize int `yaml:"chunk_size"`

	// Delete settings
	RecursiveDelete *bool         `yaml:"recursive_delete,omitempty"`
	ProcessFallback bool          `yaml:"process_fallback"`
	ProcessTimeout  time.Duration `yaml:"process_timeout"`

	// BackupDir receives a snapshot of each directory before it is cleaned.
	// Empty disables snapshots.
	BackupDir string `yaml:"backup_dir,omitempty"`
}

// HooksConfig points at tengo scripts.
type HooksConfig struct {
	PreClean  string `yaml:"pre_clean,omitempty"`
	PostClean string `yaml:"post_clean,omitempty"`
}

// Default configuration values.
const (
	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultProcessTimeout bounds the native remove fallback.
	DefaultProcessTimeout = 2 * time.Minute

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		App: AppConfig{
			DataRoot:            appdir.DefaultDataRoot,
			ExternalStorageRoot: appdir.DefaultExternalRoot,
		},
		Settings: Settings{
			LogLevel:        DefaultLogLevel,
			ChunkSize:       transfer.DefaultChunkSize,
			RecursiveDelete: &recursive,
			ProcessTimeout:  DefaultProcessTimeout,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}

	return &config, nil
}

// SaveConfig writes the configuration to path through a temporary file so a
// failed write never leaves a truncated config behind.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return err
	}
	if err := validateHooks(c.Hooks); err != nil {
		return err
	}
	return nil
}

func validateSettings(s Settings) error {
	if !validLogLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrInvalidLogLevel, "%q (must be one of debug, info, warn, error)", s.LogLevel)
	}
	if s.ChunkSize != 0 && s.ChunkSize < transfer.MinChunkSize {
		return errors.Wrapf(errors.ErrInvalidChunkSize, "%d is below the minimum of %d bytes", s.ChunkSize, transfer.MinChunkSize)
	}
	if s.ProcessTimeout < 0 {
		return fmt.Errorf("process_timeout cannot be negative: %s", s.ProcessTimeout)
	}
	return nil
}

func validateHooks(h HooksConfig) error {
	for _, script := range []string{h.PreClean, h.PostClean} {
		if script != "" && filepath.Ext(script) != hooks.HookFileExtension {
			return fmt.Errorf("hook script %q must have the %s extension", script, hooks.HookFileExtension)
		}
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, "appclean", "config.yaml"), nil
}

// Recursive reports whether tree deletes descend into subdirectories.
func (s Settings) Recursive() bool {
	return s.RecursiveDelete == nil || *s.RecursiveDelete
}

// AppContext builds the application context the resolver works from.
// Configured directory overrides act as platform-reported directories.
func (c *Config) AppContext() *appdir.StaticContext {
	ctx := appdir.NewStaticContext(c.App.PackageName)
	ctx.Version = c.App.PlatformVersion

	overrides := map[appdir.Kind]string{
		appdir.KindCache:         c.App.CacheDir,
		appdir.KindFiles:         c.App.FilesDir,
		appdir.KindDatabases:     c.App.DatabasesDir,
		appdir.KindSharedPrefs:   c.App.SharedPrefsDir,
		appdir.KindExternalCache: c.App.ExternalCacheDir,
	}
	for kind, dir := range overrides {
		if dir != "" {
			ctx.WithDir(kind, dir)
		}
	}
	return ctx
}

// Resolver returns a resolver over the configured roots.
func (c *Config) Resolver() *appdir.Resolver {
	return appdir.NewResolver(c.App.DataRoot, c.App.ExternalStorageRoot)
}

// HookScripts maps each hook type to its configured script path.
func (c *Config) HookScripts() map[hooks.HookType]string {
	return map[hooks.HookType]string{
		hooks.PreClean:  c.Hooks.PreClean,
		hooks.PostClean: c.Hooks.PostClean,
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.App.DataRoot == "" {
		c.App.DataRoot = defaults.App.DataRoot
	}
	if c.App.ExternalStorageRoot == "" {
		c.App.ExternalStorageRoot = defaults.App.ExternalStorageRoot
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.ChunkSize == 0 {
		c.Settings.ChunkSize = defaults.Settings.ChunkSize
	}
	if c.Settings.RecursiveDelete == nil {
		c.Settings.RecursiveDelete = defaults.Settings.RecursiveDelete
	}
	if c.Settings.ProcessTimeout == 0 {
		c.Settings.ProcessTimeout = defaults.Settings.ProcessTimeout
	}
}
