package cache

import "fmt"

// Common cache errors.
var (
	// ErrCacheClean is returned when at least one cleanup target failed.
	ErrCacheClean = fmt.Errorf("failed to clean application data")

	// ErrCacheInfo is returned when directory sizes cannot be computed.
	ErrCacheInfo = fmt.Errorf("failed to get application data info")

	// ErrInvalidDatabaseName is returned for empty names or names that
	// reach outside the databases directory.
	ErrInvalidDatabaseName = fmt.Errorf("invalid database name")
)
