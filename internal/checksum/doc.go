// Package checksum fingerprints the raw CSV files the loader ingests.
//
// Two SHA-256 checksums are kept per stream. The raw checksum covers the
// bytes exactly as read. The normalized checksum ignores a leading UTF-8 byte
// order mark and every carriage return, so an export re-saved with Windows
// line endings keeps the same normalized checksum.
//
// A Digest is fed while the file is parsed, so large files are never held
// in memory:
//
//	d := checksum.NewDigest()
//	table, err := csvtable.Read(d.Reader(f), csvtable.ReadOptions{})
//	fmt.Println(d.Raw(), d.Normalized())
//
// A Digest is not safe for concurrent use.
package checksum
