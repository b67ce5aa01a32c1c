package appdir

// Context is what the host platform knows about an installed application.
type Context interface {
	// PackageName returns the application identifier, e.g. "com.example.app".
	PackageName() string
	// Dir returns the platform-reported directory for kind, or "" when the
	// platform cannot supply one.
	Dir(kind Kind) string
	// PlatformVersion returns the OS release, e.g. "4.4" or "13".
	PlatformVersion() string
}

// StaticContext is a Context built from fixed values.
type StaticContext struct {
	Package string
	Dirs    map[Kind]string
	Version string
}

// NewStaticContext creates a StaticContext with no reported directories.
func NewStaticContext(pkg string) *StaticContext {
	return &StaticContext{
		Package: pkg,
		Dirs:    make(map[Kind]string),
	}
}

// WithDir records the platform-reported directory for kind.
func (c *StaticContext) WithDir(kind Kind, path string) *StaticContext {
	if c.Dirs == nil {
		c.Dirs = make(map[Kind]string)
	}
	c.Dirs[kind] = path
	return c
}

// PackageName implements Context.
func (c *StaticContext) PackageName() string {
	return c.Package
}

// Dir implements Context.
func (c *StaticContext) Dir(kind Kind) string {
	return c.Dirs[kind]
}

// PlatformVersion implements Context.
func (c *StaticContext) PlatformVersion() string {
	return c.Version
}

var _ Context = (*StaticContext)(nil)
