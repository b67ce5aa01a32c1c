package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cperrin88/appclean/pkg/errors"
	"github.com/cperrin88/appclean/pkg/transfer"
)

// NewCopyCmd creates the copy command.
func NewCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy SRC DST",
		Short: "Copy a file",
		Long:  "Copy a file in fixed-size chunks, creating the destination directory if needed",
		Args:  cobra.ExactArgs(srcDstArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			copier := newCopier(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			return copier.CopyFile(args[0], args[1])
		},
	}
}

// NewMoveCmd creates the move command.
func NewMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move SRC DST",
		Short: "Move a file",
		Long: `Move a file by renaming it. When the rename fails, for example across
filesystems, the file is copied and the source removed.`,
		Args: cobra.ExactArgs(srcDstArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			copier := newCopier(cfg, newLogger(cfg, cmd.ErrOrStderr()))
			return copier.MoveFile(args[0], args[1])
		},
	}
}

// NewSaveCmd creates the save command.
func NewSaveCmd() *cobra.Command {
	var skipSame bool

	cmd := &cobra.Command{
		Use:   "save DST",
		Short: "Save standard input to a file",
		Long:  "Write everything read from standard input to DST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			copier := newCopier(cfg, newLogger(cfg, cmd.ErrOrStderr()))

			if !skipSame {
				return copier.SaveStream(cmd.InOrStdin(), args[0], false)
			}

			data, err := copier.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			same, err := copier.SameSize(args[0], bytes.NewReader(data))
			if err != nil {
				return err
			}
			if same {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is unchanged\n", args[0])
				return nil
			}
			return copier.SaveBytes(data, args[0])
		},
	}

	cmd.Flags().BoolVar(&skipSame, "skip-same-size", false, "Leave DST alone when it already has the size of the input")

	return cmd
}

// NewEncodingCmd creates the encoding command.
func NewEncodingCmd() *cobra.Command {
	var (
		html   bool
		decode bool
	)

	cmd := &cobra.Command{
		Use:   "encoding FILE",
		Short: "Detect the text encoding of a file",
		Long: `Detect the text encoding of a file from its byte-order mark. With --html
the charset declared by a <meta> tag takes precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return errors.Classify(err)
			}
			defer func() { _ = file.Close() }()

			reader := bufio.NewReader(file)
			label := transfer.DetectEncoding(reader)
			if html {
				if charset := transfer.DetectHTMLCharset(reader); charset != "" {
					label = charset
				}
			}

			if !decode {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), label)
				return nil
			}

			text, err := transfer.DecodeString(reader, label)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Honour a charset declared in an HTML <meta> tag")
	cmd.Flags().BoolVar(&decode, "decode", false, "Print the file decoded to UTF-8 instead of the encoding name")

	return cmd
}
