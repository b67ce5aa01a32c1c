// Package errors defines the error taxonomy shared by the file and cache
// management packages together with small wrapping helpers.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Failure taxonomy. Every I/O failure surfaced by a public operation wraps
// exactly one of these.
var (
	// ErrNotFound is returned when a source file or directory does not exist.
	ErrNotFound = fmt.Errorf("not found")

	// ErrPermissionDenied is returned when the OS refuses a delete or write,
	// including files locked or busy at the time of the call.
	ErrPermissionDenied = fmt.Errorf("permission denied or locked")

	// ErrPartialFailure is returned when some children of a tree were removed
	// but the root or some siblings were not.
	ErrPartialFailure = fmt.Errorf("partial failure")

	// ErrUnsupported is returned when a platform capability is absent, such as
	// external storage that is not mounted or not writable.
	ErrUnsupported = fmt.Errorf("unsupported")
)

// Argument and process errors.
var (
	ErrEmptyPath     = fmt.Errorf("path cannot be empty")
	ErrEmptyPaths    = fmt.Errorf("source and destination paths cannot be empty")
	ErrNotDirectory  = fmt.Errorf("not a directory")
	ErrProcessFailed = fmt.Errorf("native process failed")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")
	ErrInvalidLogLevel   = fmt.Errorf("invalid log level")
	ErrInvalidChunkSize  = fmt.Errorf("invalid chunk size")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrEmptyPackageName  = fmt.Errorf("package name cannot be empty")
	ErrUnknownTargetKind = fmt.Errorf("unknown target kind")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Classify attaches the matching taxonomy sentinel to an OS error so callers
// can test it with errors.Is. Errors that already carry a sentinel, and errors
// outside the taxonomy, are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrNotFound, ErrPermissionDenied, ErrPartialFailure, ErrUnsupported} {
		if stderrors.Is(err, sentinel) {
			return err
		}
	}

	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case stderrors.Is(err, fs.ErrPermission),
		stderrors.Is(err, syscall.EBUSY),
		stderrors.Is(err, syscall.ETXTBSY):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
