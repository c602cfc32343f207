//go:build !windows

package vfs

// Unix-like systems only have the dot convention.
func hasHiddenAttribute(string) bool {
	return false
}
