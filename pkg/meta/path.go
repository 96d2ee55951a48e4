package meta

import (
	gopath "path"
	"strings"
)

// RootPath is the canonical path of the namespace root.
const RootPath = "/"

// NormalizePath turns a raw request path into its canonical absolute form.
//
// An empty or missing path defaults to the root. Redundant separators and
// "."/".." segments are collapsed. Paths must be absolute; a relative path
// or one containing NUL bytes fails with ErrInvalidPath.
func NormalizePath(raw string) (string, error) {
	if raw == "" {
		return RootPath, nil
	}
	if strings.ContainsRune(raw, 0) {
		return "", InvalidPath(raw)
	}
	if !strings.HasPrefix(raw, "/") {
		return "", InvalidPath(raw)
	}

	cleaned := gopath.Clean(raw)
	if cleaned == "." {
		cleaned = RootPath
	}
	return cleaned, nil
}

// SplitPath returns the components of a canonical path, excluding the
// root separator. The root itself has no components.
func SplitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// JoinPath appends a component to a canonical parent path.
func JoinPath(parent, name string) string {
	if parent == RootPath {
		return RootPath + name
	}
	return parent + "/" + name
}

// ParentPath returns the canonical parent of a path ("/" for "/" itself).
func ParentPath(path string) string {
	if path == RootPath {
		return RootPath
	}
	parent := gopath.Dir(path)
	if parent == "." {
		return RootPath
	}
	return parent
}

// BaseName returns the last component of a canonical path ("/" for the root).
func BaseName(path string) string {
	if path == RootPath {
		return RootPath
	}
	return gopath.Base(path)
}
