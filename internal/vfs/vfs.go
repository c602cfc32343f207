// Package vfs is the filesystem seam used by the scanner.
//
// OS is the only production implementation; tests wrap it to inject listing
// and read failures that are hard to provoke on a real disk.
package vfs

import (
	"io"
	"io/fs"
	"os"
)

// FS is the set of filesystem queries a tree scan needs.
type FS interface {
	// Stat follows symlinks.
	Stat(path string) (fs.FileInfo, error)

	// ReadDir lists a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// Open opens a file for streamed reading.
	Open(path string) (io.ReadCloser, error)

	// IsHidden reports whether the entry should be treated as hidden.
	IsHidden(path, name string) bool
}

// OS implements FS on the host filesystem.
type OS struct{}

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

func (OS) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

func (OS) IsHidden(path, name string) bool { return IsHidden(path, name) }

// IsHidden reports whether name starts with a dot or, where the platform has
// one, path carries the hidden attribute.
func IsHidden(path, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	return hasHiddenAttribute(path)
}
