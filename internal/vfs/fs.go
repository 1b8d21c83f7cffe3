// Package vfs is the filesystem view used by toolchain path probing.
// Production code reads the host filesystem; tests hand in an in-memory
// tree so existence checks are deterministic.
package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS answers the existence queries the driver needs.
type FS struct {
	fs   billy.Filesystem
	host bool
}

// OS returns a view of the host filesystem rooted at "/".
func OS() *FS {
	return &FS{fs: osfs.New("/"), host: true}
}

// Memory returns an empty in-memory filesystem.
func Memory() *FS {
	return &FS{fs: memfs.New()}
}

// New wraps an arbitrary billy filesystem.
func New(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

func (f *FS) resolve(path string) string {
	if f.host && !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return filepath.Clean(path)
}

// Stat returns file information for path.
func (f *FS) Stat(path string) (os.FileInfo, error) {
	info, err := f.fs.Stat(f.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("vfs: stat %q: %w", path, err)
	}
	return info, nil
}

// Exists reports whether path names an existing file or directory.
// Errors other than "not found" are treated as absence.
func (f *FS) Exists(path string) bool {
	if f == nil || path == "" {
		return false
	}
	_, err := f.fs.Stat(f.resolve(path))
	return err == nil
}

// IsDir reports whether path names an existing directory.
func (f *FS) IsDir(path string) bool {
	if f == nil || path == "" {
		return false
	}
	info, err := f.fs.Stat(f.resolve(path))
	return err == nil && info.IsDir()
}

// CanExecute reports whether path is a regular file the current user may
// execute.
func (f *FS) CanExecute(path string) bool {
	if f == nil || path == "" {
		return false
	}
	resolved := f.resolve(path)
	info, err := f.fs.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if f.host {
		return hostCanExecute(resolved)
	}
	return info.Mode().Perm()&0o111 != 0
}

// MkdirAll creates a directory tree.
func (f *FS) MkdirAll(path string, perm os.FileMode) error {
	if err := f.fs.MkdirAll(f.resolve(path), perm); err != nil {
		return fmt.Errorf("vfs: mkdirall %q: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories.
func (f *FS) WriteFile(path string, data []byte, perm os.FileMode) error {
	resolved := f.resolve(path)
	if err := f.fs.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("vfs: mkdirall %q: %w", filepath.Dir(path), err)
	}
	if err := util.WriteFile(f.fs, resolved, data, perm); err != nil {
		return fmt.Errorf("vfs: writefile %q: %w", path, err)
	}
	return nil
}

// ReadDir lists the names in a directory, sorted. A missing directory
// yields an empty list.
func (f *FS) ReadDir(path string) []string {
	if f == nil || path == "" {
		return nil
	}
	infos, err := f.fs.ReadDir(f.resolve(path))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}
