package hooks

import (
	"fmt"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Common hook errors.
var (
	// ErrHookTypeEmpty is returned when a hook type is empty.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

	// ErrHookExecution is returned when a hook script fails to run.
	ErrHookExecution = fmt.Errorf("error executing hook")

	// ErrHookScript is returned when a hook script reports an error through
	// its err variable.
	ErrHookScript = fmt.Errorf("hook script error")

	// ErrHookLoad is returned when a hook script cannot be read.
	ErrHookLoad = fmt.Errorf("failed to load hook")
)

// ErrUnsupportedHookEvent is returned when an unsupported hook type is used.
func ErrUnsupportedHookEvent(event string) error {
	return errors.Wrapf(ErrHookExecution, "unsupported hook event: %s", event)
}
