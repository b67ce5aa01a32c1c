package appdir

import (
	"strings"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Kind tags what an application directory holds.
type Kind int

// Supported directory kinds.
const (
	KindCache Kind = iota
	KindFiles
	KindDatabases
	KindSharedPrefs
	KindExternalCache
)

// Kinds lists every kind in cleanup order.
func Kinds() []Kind {
	return []Kind{KindCache, KindExternalCache, KindDatabases, KindSharedPrefs, KindFiles}
}

// String returns the name used in logs, config and the CLI.
func (k Kind) String() string {
	switch k {
	case KindCache:
		return "cache"
	case KindFiles:
		return "files"
	case KindDatabases:
		return "databases"
	case KindSharedPrefs:
		return "shared_prefs"
	case KindExternalCache:
		return "external_cache"
	default:
		return "unknown"
	}
}

// Subdir returns the directory name below the package root.
func (k Kind) Subdir() string {
	if k == KindExternalCache {
		return "cache"
	}
	return k.String()
}

// ParseKind is the inverse of Kind.String. A few short aliases are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cache", "internal", "internal_cache":
		return KindCache, nil
	case "files":
		return KindFiles, nil
	case "databases", "db":
		return KindDatabases, nil
	case "shared_prefs", "prefs", "sharedprefs":
		return KindSharedPrefs, nil
	case "external_cache", "external":
		return KindExternalCache, nil
	default:
		return 0, errors.Wrapf(errors.ErrUnknownTargetKind, "%q", s)
	}
}
