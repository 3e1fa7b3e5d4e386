// Package fsys abstracts the two filesystem operations the resolver
// needs (list child directories, probe a directory) so the search
// pipeline can run against an in-memory tree in tests.
package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FS is the capability the resolver works against.
type FS interface {
	// ListDir returns the names of the immediate child directories of
	// path, in listing order. Files are not included.
	ListDir(path string) ([]string, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
}

// OS implements FS on the real filesystem.
type OS struct{}

func (OS) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
			continue
		}
		// Follow symlinks and junctions that point at directories.
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(path, entry.Name())); err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}

func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Mem is an in-memory directory tree for tests.
type Mem struct {
	children map[string][]string
}

// NewMem builds a tree containing the given directories. Ancestors are
// created implicitly, so NewMem("/a/b/c") also registers /a and /a/b.
func NewMem(dirs ...string) *Mem {
	m := &Mem{children: make(map[string][]string)}
	for _, dir := range dirs {
		m.Add(dir)
	}
	return m
}

// Add registers a directory and all of its ancestors.
func (m *Mem) Add(dir string) {
	dir = filepath.Clean(dir)
	for {
		if _, ok := m.children[dir]; !ok {
			m.children[dir] = nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		m.link(parent, filepath.Base(dir))
		dir = parent
	}
}

func (m *Mem) link(parent, name string) {
	for _, existing := range m.children[parent] {
		if existing == name {
			return
		}
	}
	m.children[parent] = append(m.children[parent], name)
	sort.Strings(m.children[parent])
}

func (m *Mem) ListDir(path string) ([]string, error) {
	names, ok := m.children[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]string(nil), names...), nil
}

func (m *Mem) IsDir(path string) bool {
	_, ok := m.children[filepath.Clean(path)]
	return ok
}
