// Package platform answers the few OS questions the file operations depend
// on: which shell syntax applies and which path separator the OS expects.
package platform

import (
	"runtime"
	"strings"
)

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSAndroid represents Android.
	OSAndroid = "android"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
)

// Current returns the normalized name of the running OS.
func Current() string {
	return NormalizeOS(runtime.GOOS)
}

// NormalizeOS normalizes OS names to a common format.
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "win", "windows":
		return OSWindows
	case "macos", "osx":
		return OSDarwin
	default:
		return os
	}
}

// UsesBackslash reports whether goos separates path elements with '\'.
func UsesBackslash(goos string) bool {
	return NormalizeOS(goos) == OSWindows
}

// Separator returns the path separator for goos.
func Separator(goos string) byte {
	if UsesBackslash(goos) {
		return '\\'
	}
	return '/'
}

// ToNative rewrites every foreign separator in path to the separator of goos.
func ToNative(goos, path string) string {
	if UsesBackslash(goos) {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return strings.ReplaceAll(path, `\`, "/")
}
