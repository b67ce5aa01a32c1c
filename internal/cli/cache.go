package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/pkg/appdir"
	"github.com/cperrin88/appclean/pkg/cache"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [TARGET...]",
		Short: "Clean application data",
		Long: `Remove application data to free up disk space.

Targets: all, cache, external, databases, prefs, files, cookies, webcache.
Without targets, the internal cache, external cache, databases, shared
preferences and files are cleaned, in that order.`,
		RunE: runClean,
	}

	cmd.AddCommand(newCleanDatabaseCmd())

	return cmd
}

func newCleanDatabaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db NAME",
		Short: "Delete one database",
		Long:  "Delete a single database and its journal files from the databases directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := newCacheManager(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			if !manager.CleanDatabaseByName(cmd.Context(), args[0]) {
				return fmt.Errorf("failed to delete database %q: %w", args[0], cache.ErrCacheClean)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted database %s\n", args[0])
			return nil
		},
	}
}

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show disk usage",
		Long:  "Display the size of each application directory and the free space on external storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := newCacheManager(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			text, err := cache.NewOperation(manager).GetInfo()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// NewDirCmd creates the dir command.
func NewDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir KIND",
		Short: "Show a directory path",
		Long:  "Display the resolved path of cache, external, databases, prefs or files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			loc, err := resolve(cfg, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), loc.Path)
			return nil
		},
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	kinds, extras, err := parseTargets(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := newCacheManager(cfg, newLogger(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	var result *multierror.Error

	if len(kinds) > 0 {
		text, err := cache.NewOperation(manager).Clean(ctx, kinds...)
		_, _ = fmt.Fprintln(out, text)
		result = multierror.Append(result, err)
	}

	for _, extra := range extras {
		var ok bool
		switch extra {
		case targetCookies:
			ok = manager.CleanCookies(ctx)
		case targetWebCache:
			ok = manager.CleanWebCache(ctx)
		}
		if ok {
			_, _ = fmt.Fprintf(out, "Cleaned %s.\n", extra)
			continue
		}
		_, _ = fmt.Fprintf(out, "Failed to clean %s.\n", extra)
		result = multierror.Append(result, fmt.Errorf("%s: %w", extra, cache.ErrCacheClean))
	}

	return result.ErrorOrNil()
}

// parseTargets splits clean arguments into directory kinds, in the order
// given, and the extra targets that are not directories.
func parseTargets(args []string) ([]appdir.Kind, []string, error) {
	if len(args) == 0 {
		return appdir.Kinds(), nil, nil
	}

	var kinds []appdir.Kind
	var extras []string
	seen := make(map[appdir.Kind]bool)
	addKind := func(k appdir.Kind) {
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}

	for _, arg := range args {
		switch arg {
		case targetAll:
			for _, k := range appdir.Kinds() {
				addKind(k)
			}
		case targetCookies, targetWebCache:
			extras = append(extras, arg)
		default:
			k, err := appdir.ParseKind(arg)
			if err != nil {
				return nil, nil, fmt.Errorf("%w (valid targets: all, cache, external, databases, prefs, files, cookies, webcache)", err)
			}
			addKind(k)
		}
	}
	return kinds, extras, nil
}
