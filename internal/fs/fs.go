// Package fs provides the filesystem abstraction used by the vault layer.
//
// Two implementations are provided:
//   - [Real]: production implementation using the [os] package
//   - [Mem]: in-memory implementation for tests
//
// The interface is intentionally small: the planner only ever reads whole
// documents, writes whole documents atomically, and creates parent folders.
package fs

import "os"

// FS defines the filesystem operations the vault needs.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a crash never leaves a partial document.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}
