package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the script registered for hookType with the given context.
// Scripts see packageName, target, path and success, plus every entry of
// ctx.Vars. A script signals failure by assigning a non-empty string or an
// error value to err.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	s := tengo.NewScript([]byte(script))
	s.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "text", "time"))

	builtins := map[string]interface{}{
		"packageName": ctx.PackageName,
		"target":      ctx.Target,
		"path":        ctx.Path,
		"success":     ctx.Success,
		"err":         "",
	}
	for name, value := range builtins {
		if err := s.Add(name, value); err != nil {
			return fmt.Errorf("failed to add %s to script: %w", name, err)
		}
	}
	for k, v := range ctx.Vars {
		if err := s.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := s.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	errVar := compiled.Get("err")
	if errVar == nil {
		return nil
	}
	switch v := errVar.Value().(type) {
	case error:
		return fmt.Errorf("%s: %w: %w", hookType, ErrHookScript, v)
	case string:
		if v != "" {
			return fmt.Errorf("%s: %w: %s", hookType, ErrHookScript, v)
		}
	}
	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
