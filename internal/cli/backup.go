package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/pkg/archive"
)

// NewBackupCmd creates the backup command.
func NewBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup KIND ARCHIVE",
		Short: "Archive an application directory",
		Long:  "Write the contents of an application directory to a tar.gz archive",
		Args:  cobra.ExactArgs(srcDstArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			loc, err := resolve(cfg, args[0])
			if err != nil {
				return err
			}

			if err := archive.NewManager().Create(cmd.Context(), loc.Path, args[1]); err != nil {
				return fmt.Errorf("failed to back up %s: %w", loc.Kind, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s to %s\n", loc.Path, args[1])
			return nil
		},
	}
}

// NewRestoreCmd creates the restore command.
func NewRestoreCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "restore ARCHIVE KIND",
		Short: "Restore an application directory from an archive",
		Long: `Extract a tar.gz archive into an application directory. With --file only
the named entry is restored.`,
		Args: cobra.ExactArgs(srcDstArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			loc, err := resolve(cfg, args[1])
			if err != nil {
				return err
			}

			if file != "" && !filepath.IsLocal(filepath.FromSlash(file)) {
				return fmt.Errorf("archive entry %q escapes %s", file, loc.Path)
			}

			am := archive.NewManager()
			if file != "" {
				err = am.ExtractFile(cmd.Context(), args[0], file, filepath.Join(loc.Path, filepath.FromSlash(file)))
			} else {
				err = am.ExtractAll(cmd.Context(), args[0], loc.Path)
			}
			if err != nil {
				return fmt.Errorf("failed to restore %s: %w", loc.Kind, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", loc.Path, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Restore only this entry of the archive")

	return cmd
}
