package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/fsutil"
	"github.com/cperrin88/appclean/pkg/hooks"
)

// NewHooksCmd creates the hooks command.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Work with cleanup hook scripts",
	}

	cmd.AddCommand(newHooksTemplateCmd())

	return cmd
}

func newHooksTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template TYPE",
		Short: "Print a hook script template",
		Long:  "Print a tengo template for a pre-clean or post-clean hook, or write it to a file with --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookType := hooks.HookType(args[0])
			if !hookType.Valid() {
				return hooks.ErrUnsupportedHookEvent(args[0])
			}

			template := hooks.HookTemplate(hookType)
			if output == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), template)
				return nil
			}

			if err := fsutil.EnsureFileDir(output); err != nil {
				return errors.Classify(err)
			}
			if err := os.WriteFile(output, []byte(template), fsutil.FileModeDefault); err != nil {
				return errors.Classify(errors.Wrapf(err, "failed to write %s", output))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s hook template to %s\n", hookType, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the template to this file")

	return cmd
}
