// Package files groups the file access used by the loader and the summary
// sinks:
//   - filesystem: filesystem abstraction (OS and in-memory)
//   - scanner: discovery of the *.csv seed files of a data directory
//
// # Usage
//
//	import (
//	    "github.com/nipunchauhan/vendorsum/internal/files/filesystem"
//	    "github.com/nipunchauhan/vendorsum/internal/files/scanner"
//	)
//
//	fsProvider := filesystem.NewOSFileSystem()
//	files, err := scanner.NewScannerWithFS(fsProvider).ScanDirectory("./data")
//
// Parsing and checksumming of the discovered files happen in the ingest
// package, which reads them through the same FileSystemProvider.
package files
