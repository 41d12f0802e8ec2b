package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is a single entry discovered under a source root.
type File interface {
	// Path returns the absolute path to the entry
	Path() string

	// RelativePath returns the path relative to the source root, using forward slashes
	RelativePath() string

	// Info returns entry metadata
	Info() FileInfo

	// Open returns a reader over the entry's content; the caller closes it
	Open() (io.ReadCloser, error)
}

// Directory is a source root that can be traversed.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits every entry under the directory in lexical order.
	// If fn returns an error, walking stops and that error is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens source roots.
type FileSystemProvider interface {
	// Open opens the directory at path
	Open(path string) (Directory, error)
}
