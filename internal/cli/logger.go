package cli

import (
	"io"

	"github.com/cperrin88/appclean/pkg/config"
	"github.com/cperrin88/appclean/pkg/logger"
)

// newLogger builds the sink used by a command. Log lines go to w, which is
// the command's stderr, so stdout carries only command output.
func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	return logger.New(logger.Options{
		Level:   cfg.Settings.LogLevel,
		NoColor: cfg.Settings.NoColor,
		Output:  w,
	})
}
