package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Scanner lists seed files in a data directory.
// Scanner is safe for concurrent use as long as the provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDirectory returns the seed files directly inside dir, sorted by name.
// An empty result is not an error.
func (s *Scanner) ScanDirectory(dir string) ([]vendorsum.SourceFile, error) {
	info, err := s.fsProvider.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: data directory %s: %v", vendorsum.ErrInvalidConfig, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: data directory %s is not a directory", vendorsum.ErrInvalidConfig, dir)
	}

	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []vendorsum.SourceFile
	for _, e := range entries {
		if e.IsDir() || !IsSeedFile(e.Name()) {
			continue
		}
		files = append(files, vendorsum.SourceFile{
			Path:       filepath.Join(dir, e.Name()),
			Name:       e.Name(),
			TableName:  TableName(e.Name()),
			SizeBytes:  e.Size(),
			ModifiedAt: e.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// IsSeedFile reports whether name has the seed file extension, ignoring case.
func IsSeedFile(name string) bool {
	ext := vendorsum.CSVExtension
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// TableName derives a table name from a seed file name by dropping the extension.
func TableName(name string) string {
	return name[:len(name)-len(vendorsum.CSVExtension)]
}

var _ vendorsum.FileScanner = (*Scanner)(nil)
