package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Keys lists the keys accepted by SetValue and GetValue, in display order.
func Keys() []string {
	return []string{
		"package_name",
		"data_root",
		"external_storage_root",
		"platform_version",
		"log_level",
		"no_color",
		"chunk_size",
		"recursive_delete",
		"process_fallback",
		"process_timeout",
		"backup_dir",
		"pre_clean",
		"post_clean",
	}
}

// SetValue sets a configuration value by key. Values are parsed according to
// the field type; the result is not validated.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "package_name":
		c.App.PackageName = value
	case "data_root":
		c.App.DataRoot = value
	case "external_storage_root":
		c.App.ExternalStorageRoot = value
	case "platform_version":
		c.App.PlatformVersion = value
	case "log_level":
		c.Settings.LogLevel = strings.ToLower(value)
	case "no_color":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Settings.NoColor = b
	case "chunk_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Settings.ChunkSize = n
	case "recursive_delete":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Settings.RecursiveDelete = &b
	case "process_fallback":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Settings.ProcessFallback = b
	case "process_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.ProcessTimeout = d
	case "backup_dir":
		c.Settings.BackupDir = value
	case "pre_clean":
		c.Hooks.PreClean = value
	case "post_clean":
		c.Hooks.PostClean = value
	default:
		return errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
	return nil
}

// GetValue returns the value for key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "package_name":
		return c.App.PackageName, nil
	case "data_root":
		return c.App.DataRoot, nil
	case "external_storage_root":
		return c.App.ExternalStorageRoot, nil
	case "platform_version":
		return c.App.PlatformVersion, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "no_color":
		return strconv.FormatBool(c.Settings.NoColor), nil
	case "chunk_size":
		return strconv.Itoa(c.Settings.ChunkSize), nil
	case "recursive_delete":
		return strconv.FormatBool(c.Settings.Recursive()), nil
	case "process_fallback":
		return strconv.FormatBool(c.Settings.ProcessFallback), nil
	case "process_timeout":
		return c.Settings.ProcessTimeout.String(), nil
	case "backup_dir":
		return c.Settings.BackupDir, nil
	case "pre_clean":
		return c.Hooks.PreClean, nil
	case "post_clean":
		return c.Hooks.PostClean, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
}

// ToMap returns every key with its current value.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		value, err := c.GetValue(key)
		if err != nil {
			continue
		}
		result[key] = value
	}
	return result
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}
	return b, nil
}
