package fs

import (
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// Mem implements [FS] entirely in memory. It exists for tests that want to
// drive the vault without touching the disk. Paths are normalized with
// forward slashes; directories are tracked so Exists answers for them too.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMem returns an empty in-memory filesystem.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  map[string]bool{".": true},
	}
}

func memKey(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (m *Mem) ReadFile(p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[memKey(p)]
	if !ok {
		return nil, &iofs.PathError{Op: "open", Path: p, Err: iofs.ErrNotExist}
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

func (m *Mem) WriteFileAtomic(p string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(p)

	stored := make([]byte, len(data))
	copy(stored, data)

	m.files[key] = stored
	m.markParents(key)

	return nil
}

func (m *Mem) MkdirAll(p string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(p)
	m.dirs[key] = true
	m.markParents(key + "/x")

	return nil
}

func (m *Mem) Stat(p string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(p)

	if data, ok := m.files[key]; ok {
		return memInfo{name: path.Base(key), size: int64(len(data))}, nil
	}

	if m.dirs[key] {
		return memInfo{name: path.Base(key), dir: true}, nil
	}

	return nil, &iofs.PathError{Op: "stat", Path: p, Err: iofs.ErrNotExist}
}

func (m *Mem) Exists(p string) (bool, error) {
	_, err := m.Stat(p)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

func (m *Mem) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(p)
	if _, ok := m.files[key]; !ok {
		return &iofs.PathError{Op: "remove", Path: p, Err: iofs.ErrNotExist}
	}

	delete(m.files, key)

	return nil
}

// markParents records every ancestor directory of key as existing.
// Caller must hold m.mu.
func (m *Mem) markParents(key string) {
	dir := path.Dir(key)
	for dir != "." && dir != "/" && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// Paths returns the sorted-insensitive set of stored file paths.
// Test helper; order is unspecified.
func (m *Mem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.files))
	for key := range m.files {
		out = append(out, key)
	}

	return out
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() os.FileMode  { return 0o600 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }

var _ FS = (*Mem)(nil)
