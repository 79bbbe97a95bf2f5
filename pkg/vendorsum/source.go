package vendorsum

import "time"

// SourceFile is a delimited seed file discovered in the data directory.
type SourceFile struct {
	// Path is the file path as passed to the filesystem provider.
	Path string
	// Name is the base file name, e.g. "orders.csv".
	Name string
	// TableName is Name without its extension, e.g. "orders".
	TableName  string
	SizeBytes  int64
	ModifiedAt time.Time
}

// FileScanner discovers seed files.
type FileScanner interface {
	ScanDirectory(dir string) ([]SourceFile, error)
}
