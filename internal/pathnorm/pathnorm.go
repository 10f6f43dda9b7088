// Package pathnorm converts export paths between the slash-separated form the
// aggregator computes, the host OS convention used for export calls, and the
// embedding-safe form written into the manifest.
package pathnorm

import (
	"os"
	"strings"
)

// OSPath rewrites forward-slash separators into the host separator.
func OSPath(path string) string {
	return OSPathFor(path, os.PathSeparator)
}

// OSPathFor rewrites forward-slash separators into sep. It is the testable
// core of OSPath.
func OSPathFor(path string, sep rune) string {
	if path == "" || sep == '/' {
		return path
	}
	return strings.ReplaceAll(path, "/", string(sep))
}

// ManifestPath returns the form of path that is embedded in the manifest.
// Backslash separators are rewritten to forward slashes so no raw backslash
// reaches the manifest text; the converter reads this form on every platform.
func ManifestPath(path string) string {
	if path == "" {
		return path
	}
	return strings.ReplaceAll(path, `\`, "/")
}
