package hooks

// HookType represents the point in a cleanup at which a hook runs.
type HookType string

// Supported hook types.
const (
	PreClean  HookType = "pre-clean"
	PostClean HookType = "post-clean"
)

// Types lists the supported hook types in execution order.
func Types() []HookType {
	return []HookType{PreClean, PostClean}
}

// Valid reports whether t is a supported hook type.
func (t HookType) Valid() bool {
	switch t {
	case PreClean, PostClean:
		return true
	default:
		return false
	}
}

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	PackageName string
	// Target is the cleanup target, e.g. "cache" or "databases".
	Target string
	Path   string
	// Success is only meaningful for post-clean hooks.
	Success bool
	Vars    map[string]interface{}
}
