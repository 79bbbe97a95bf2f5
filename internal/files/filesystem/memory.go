package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem with an empty root directory.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.entries[root] = newDirEntry(root)
	return mfs
}

func newDirEntry(p string) *memoryEntry {
	return &memoryEntry{info: &memoryFileInfo{
		name:    path.Base(p),
		mode:    0755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}}
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

// AddFile adds a file, creating its parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(mfs.resolve(filePath), []byte(content))
}

// AddDir adds an empty directory and its parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.resolve(dirPath)
	mfs.ensureDirectoriesExist(abs + "/x")
}

// Content returns the bytes of a file, for assertions in tests.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	e, ok := mfs.entries[mfs.resolve(filePath)]
	if !ok || e.info.isDir {
		return "", false
	}
	return string(e.content), true
}

func (mfs *MemoryFileSystem) put(abs string, content []byte) {
	mfs.entries[abs] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(abs)
}

func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if _, exists := mfs.entries[dir]; exists || dir == "/" || dir == "." {
		return
	}
	mfs.entries[dir] = newDirEntry(dir)
	mfs.ensureDirectoriesExist(dir)
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(dirPath)
	dir, ok := mfs.entries[abs]
	if !ok {
		return nil, fmt.Errorf("failed to read directory: %s: %w", dirPath, fs.ErrNotExist)
	}
	if !dir.info.isDir {
		return nil, fmt.Errorf("failed to read directory: %s: not a directory", dirPath)
	}

	var result []FileInfo
	for p, e := range mfs.entries {
		if p != abs && path.Dir(p) == abs {
			result = append(result, e.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, ok := mfs.entries[mfs.resolve(filePath)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", filePath, fs.ErrNotExist)
	}
	if e.info.isDir {
		return nil, fmt.Errorf("open %s: is a directory", filePath)
	}
	return io.NopCloser(bytes.NewReader(e.content)), nil
}

// Create implements FileSystemProvider.Create. Content becomes visible on Close.
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(filePath)
	if e, ok := mfs.entries[abs]; ok && e.info.isDir {
		return nil, fmt.Errorf("create %s: is a directory", filePath)
	}
	if parent, ok := mfs.entries[path.Dir(abs)]; !ok || !parent.info.isDir {
		return nil, fmt.Errorf("create %s: %w", filePath, fs.ErrNotExist)
	}
	return &memoryWriter{fs: mfs, path: abs}, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, ok := mfs.entries[mfs.resolve(statPath)]
	if !ok {
		return nil, fmt.Errorf("stat %s: %w", statPath, fs.ErrNotExist)
	}
	return e.info, nil
}

type memoryWriter struct {
	fs     *MemoryFileSystem
	path   string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.put(w.path, bytes.Clone(w.buf.Bytes()))
	return nil
}
