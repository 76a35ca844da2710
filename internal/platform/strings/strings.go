// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /export or /api/v1
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// CleanFolder trims whitespace and surrounding slashes from an object-store folder
// An all-slash or blank input yields ""
func CleanFolder(s string) string {
	return std.Trim(std.TrimSpace(s), "/")
}

// JoinKey joins an optional folder and a leaf name with a single slash
func JoinKey(folder, name string) string {
	if folder = CleanFolder(folder); folder == "" {
		return name
	}
	return folder + "/" + name
}
