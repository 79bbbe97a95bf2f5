// Package scanner discovers seed files for the loader.
//
// Only regular files directly inside the data directory whose name ends in
// ".csv" (any case) are returned, in lexical order. Subdirectories are not
// descended. The scanner reads through filesystem.FileSystemProvider so tests
// can use an in-memory tree.
package scanner
