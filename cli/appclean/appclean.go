package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/internal/cli"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	// Retry deletions deferred while the command ran.
	cli.FlushDeferred(os.Stderr)
	cancel()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appclean",
		Short: "Manage an application's files and caches",
		Long: `appclean locates and cleans the data directories of an installed application:
- clean: remove caches, databases, preferences, files, cookies and web caches
- info, dir: report sizes and locations
- copy, move, save, rm: chunked file transfer and tree removal
- backup, restore: tar.gz snapshots of application directories`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI package variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	// Add subcommands
	cmd.AddCommand(
		cli.NewCleanCmd(),
		cli.NewInfoCmd(),
		cli.NewDirCmd(),
		cli.NewCopyCmd(),
		cli.NewMoveCmd(),
		cli.NewSaveCmd(),
		cli.NewEncodingCmd(),
		cli.NewRemoveCmd(),
		cli.NewBackupCmd(),
		cli.NewRestoreCmd(),
		cli.NewConfigCmd(),
		cli.NewHooksCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
