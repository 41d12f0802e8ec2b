package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryModTime is the modification time of every in-memory entry, so that
// records built from a MemoryFileSystem are reproducible.
var memoryModTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type memoryFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) ModTime() time.Time { return memoryModTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return 0755 | fs.ModeDir
	}
	return 0644
}

type memoryEntry struct {
	absPath string
	content []byte
	info    *memoryFileInfo
}

type memoryFile struct {
	*memoryEntry
	relPath string
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	for _, p := range d.fs.pathsUnder(d.absPath) {
		rel := "."
		if p != d.absPath {
			rel = strings.TrimPrefix(p, strings.TrimSuffix(d.absPath, "/")+"/")
		}
		if err := fn(&memoryFile{memoryEntry: d.fs.entries[p], relPath: rel}, nil); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths are resolved against root.
type MemoryFileSystem struct {
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// Root returns the root path the filesystem was created with.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file and any missing parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	absPath := mfs.resolve(filePath)
	mfs.entries[absPath] = &memoryEntry{
		absPath: absPath,
		content: []byte(content),
		info: &memoryFileInfo{
			name: path.Base(absPath),
			size: int64(len(content)),
		},
	}

	for dir := path.Dir(absPath); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, exists := mfs.entries[dir]; exists {
			break
		}
		mfs.addDir(dir)
	}
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	mfs.entries[dir] = &memoryEntry{
		absPath: dir,
		info:    &memoryFileInfo{name: path.Base(dir), isDir: true},
	}
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// pathsUnder returns base and every entry below it, sorted lexically.
func (mfs *MemoryFileSystem) pathsUnder(base string) []string {
	prefix := strings.TrimSuffix(base, "/") + "/"

	var paths []string
	for p := range mfs.entries {
		if p == base || strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	entry, exists := mfs.entries[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %s: %w", openPath, fs.ErrNotExist)
	}
	if !entry.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}
