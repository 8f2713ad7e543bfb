// Package vault is the storage boundary for planner documents.
//
// Documents live as plain markdown files under a base directory. The vault
// exposes exactly the contract the codecs rely on: Read returns an empty
// string for a missing file, Write creates parent folders and replaces the
// file atomically, and both reject unsafe paths before touching the disk.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lifeplanner/internal/fs"
)

// ErrUnsafePath is returned for absolute paths or paths containing ".."
// segments. Traversal is blocked at this boundary, not in the codecs.
var ErrUnsafePath = errors.New("unsafe path")

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Storage reads and writes planner documents relative to a root directory.
type Storage struct {
	fs   fs.FS
	root string
}

// NewStorage returns a Storage rooted at root.
// root is the directory that vault-relative paths resolve against.
func NewStorage(fsys fs.FS, root string) *Storage {
	return &Storage{fs: fsys, root: root}
}

// Read returns the content of the document at path, or an empty string if
// the file does not exist. Line endings are normalized to "\n".
func (s *Storage) Read(path string) (string, error) {
	checkErr := checkPath(path)
	if checkErr != nil {
		return "", checkErr
	}

	data, err := s.fs.ReadFile(s.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", fmt.Errorf("reading document: %w", err)
	}

	return normalizeNewlines(string(data)), nil
}

// Write creates or replaces the document at path, creating parent folders
// as needed. The write is atomic: readers never observe a partial document.
func (s *Storage) Write(path, content string) error {
	checkErr := checkPath(path)
	if checkErr != nil {
		return checkErr
	}

	full := s.resolve(path)

	mkdirErr := s.fs.MkdirAll(filepath.Dir(full), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("creating document folder: %w", mkdirErr)
	}

	writeErr := s.fs.WriteFileAtomic(full, []byte(normalizeNewlines(content)), filePerms)
	if writeErr != nil {
		return fmt.Errorf("writing document: %w", writeErr)
	}

	return nil
}

// Exists reports whether a document is present at path.
func (s *Storage) Exists(path string) (bool, error) {
	checkErr := checkPath(path)
	if checkErr != nil {
		return false, checkErr
	}

	return s.fs.Exists(s.resolve(path))
}

func (s *Storage) resolve(path string) string {
	if s.root == "" {
		return filepath.FromSlash(path)
	}

	return filepath.Join(s.root, filepath.FromSlash(path))
}

// checkPath rejects absolute paths and ".." segments.
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty", ErrUnsafePath)
	}

	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("%w: %s", ErrUnsafePath, path)
		}
	}

	return nil
}

// normalizeNewlines converts CRLF and bare CR line endings to LF.
func normalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	return strings.ReplaceAll(content, "\r", "\n")
}
