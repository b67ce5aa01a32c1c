package hooks

// DefaultHookManager is the default implementation of HookManager.
type DefaultHookManager struct {
	executor *TengoExecutor
}

// NewHookManager creates a new hook manager.
func NewHookManager() *DefaultHookManager {
	return &DefaultHookManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the hook of the given type. A missing hook is not an error.
func (m *DefaultHookManager) Execute(hookType HookType, ctx HookContext) error {
	if !m.HasHook(hookType) {
		return nil
	}

	// Scripts get their own copy of the variables.
	vars := make(map[string]interface{}, len(ctx.Vars))
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	ctx.Vars = vars

	return m.executor.Execute(hookType, ctx)
}

// AddHook adds or replaces a hook.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.Valid() {
		return ErrUnsupportedHookEvent(string(hook.Type))
	}

	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook removes the hook of the given type.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}

	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of the given type exists.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	return m.executor.HasScript(hookType)
}

var _ HookManager = (*DefaultHookManager)(nil)
