package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the set of filesystem operations the pipeline needs.
type FileSystemProvider interface {
	// ReadDir returns the entries directly inside path, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing. The parent directory
	// must exist.
	Create(path string) (io.WriteCloser, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
