package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/pkg/errors"
)

// NewRemoveCmd creates the rm command.
func NewRemoveCmd() *cobra.Command {
	var process bool

	cmd := &cobra.Command{
		Use:   "rm PATH",
		Short: "Remove a file or directory tree",
		Long: `Remove a file, or a directory and everything below it. Entries that
cannot be removed now are retried when the command exits.

With --process the directory is removed by the platform's native command
(rm -rf, or RMDIR /Q /S on Windows).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			deleter := newDeleter(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			path := args[0]

			info, err := os.Lstat(path)
			if err != nil {
				return errors.Classify(err)
			}

			switch {
			case !info.IsDir():
				if err := os.Remove(path); err != nil {
					// defers the retry and logs the failure
					deleter.DeleteFile(path)
					return errors.Classify(errors.Wrapf(err, "failed to remove %s", path))
				}
			case process:
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Settings.ProcessTimeout)
				defer cancel()
				if err := deleter.RemoveViaProcess(ctx, path); err != nil {
					return err
				}
			default:
				if err := deleter.Delete(path); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&process, "process", false, "Use the platform's native remove command for directories")

	return cmd
}
