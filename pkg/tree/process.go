package tree

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/logger"
	"github.com/cperrin88/appclean/pkg/platform"
)

// RemoveCommand returns the argv that force-removes path on goos.
func RemoveCommand(goos, path string) []string {
	if platform.UsesBackslash(goos) {
		return []string{"CMD", "/D", "/C", "RMDIR /Q /S " + platform.ToNative(goos, path)}
	}
	return []string{"rm", "-rf", path}
}

// RenameCommand returns the argv that renames from to to on goos.
func RenameCommand(goos, from, to string) []string {
	if platform.UsesBackslash(goos) {
		return []string{"CMD", "/D", "/C", "REN " + from + " " + to}
	}
	return []string{"mv", "-f", from, to}
}

// RemoveViaProcess deletes path by running the native remove command and
// waiting for it to exit. A path that does not exist is reported without
// running anything.
func (d *Deleter) RemoveViaProcess(ctx context.Context, path string) error {
	if path == "" {
		return errors.ErrEmptyPath
	}
	if _, err := os.Lstat(path); err != nil {
		return errors.Classify(errors.Wrapf(err, "cannot remove %s", path))
	}

	if err := d.run(ctx, RemoveCommand(d.goos(), path)); err != nil {
		return err
	}

	// RMDIR can exit 0 while leaving files behind.
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s still present after removal", errors.ErrProcessFailed, path)
	}
	return nil
}

// DeleteTreeViaProcess is RemoveViaProcess reduced to a boolean; failures
// are logged.
func (d *Deleter) DeleteTreeViaProcess(ctx context.Context, path string) bool {
	if err := d.RemoveViaProcess(ctx, path); err != nil {
		d.log().Warn("native remove failed", logger.Fields{"path": path, "error": err.Error()})
		return false
	}
	d.log().Debug("native remove finished", logger.Fields{"path": path})
	return true
}

// RenameViaProcess renames from to to with the native rename command.
func (d *Deleter) RenameViaProcess(ctx context.Context, from, to string) error {
	if from == "" || to == "" {
		return errors.ErrEmptyPaths
	}
	if _, err := os.Lstat(from); err != nil {
		return errors.Classify(errors.Wrapf(err, "cannot rename %s", from))
	}
	return d.run(ctx, RenameCommand(d.goos(), from, to))
}

// run starts argv and waits for it, checking on it every poll interval. The
// process is killed when ctx is done.
func (d *Deleter) run(ctx context.Context, argv []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	d.log().Debug("starting native process", logger.Fields{"command": strings.Join(argv, " ")})
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start %s: %w", errors.ErrProcessFailed, argv[0], err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(d.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return processError(argv, err, stderr.String())
		case <-ticker.C:
			d.log().Debug("waiting for native process", logger.Fields{
				"command": argv[0],
				"pid":     cmd.Process.Pid,
			})
		}
	}
}

func processError(argv []string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	detail := strings.TrimSpace(stderr)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if detail == "" {
			return fmt.Errorf("%w: %s exited with code %d", errors.ErrProcessFailed, argv[0], exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %s exited with code %d: %s", errors.ErrProcessFailed, argv[0], exitErr.ExitCode(), detail)
	}
	return fmt.Errorf("%w: %s: %w", errors.ErrProcessFailed, argv[0], err)
}
