package hooks

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the hook of the given type, if any, with ctx.
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds or replaces a hook.
	AddHook(hook Hook) error

	// RemoveHook removes the hook of the given type.
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the given type exists.
	HasHook(hookType HookType) bool
}
