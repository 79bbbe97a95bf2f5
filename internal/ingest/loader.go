package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/nipunchauhan/vendorsum/internal/checksum"
	"github.com/nipunchauhan/vendorsum/internal/csvtable"
	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Result summarises a loader run.
type Result struct {
	// Tables are the tables written, in load order.
	Tables []string

	// Rows is the total number of data rows written.
	Rows int

	// Files describes each loaded file, in load order.
	Files []FileReport

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// FileReport records one loaded file.
type FileReport struct {
	File  string
	Table string
	Rows  int

	// Checksum is the SHA-256 of the file bytes. NormalizedChecksum ignores
	// a UTF-8 BOM and carriage returns.
	Checksum           string
	NormalizedChecksum string
}

// Loader loads the CSV files of a data directory into a store.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Loader struct {
	opener     vendorsum.StoreOpener
	scanner    vendorsum.FileScanner
	fsProvider filesystem.FileSystemProvider
	logger     vendorsum.Logger
	now        func() time.Time
}

// NewLoader creates a Loader with all dependencies injected.
// Panics on nil dependencies.
func NewLoader(
	opener vendorsum.StoreOpener,
	scanner vendorsum.FileScanner,
	fsProvider filesystem.FileSystemProvider,
	logger vendorsum.Logger,
) *Loader {
	if opener == nil {
		panic("opener cannot be nil")
	}
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{
		opener:     opener,
		scanner:    scanner,
		fsProvider: fsProvider,
		logger:     logger,
		now:        time.Now,
	}
}

// Run loads every seed file in cfg.DataDir. The store is opened once and
// closed before Run returns, whatever the outcome.
func (l *Loader) Run(ctx context.Context, cfg vendorsum.IngestConfig) (res Result, err error) {
	start := l.now()
	defer func() {
		res.Elapsed = l.now().Sub(start)
		if err != nil {
			l.logger.Error("An error occurred: %v", err)
		}
	}()

	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	files, err := l.scanner.ScanDirectory(cfg.DataDir)
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		l.logger.Info("No CSV files found in %s", cfg.DataDir)
	}

	store, err := l.opener(ctx, &cfg.Store)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			l.logger.Error("Failed to close database connection: %v", cerr)
			return
		}
		l.logger.Verbose("Database connection closed.")
	}()
	l.logger.Verbose("Connected to %s", cfg.Store.String())

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, &PartialError{File: f.Name, Table: f.TableName, Committed: res.Tables, Err: err}
		}

		l.logger.Info("Ingesting %s in db", f.Name)
		fileStart := l.now()
		report, err := l.loadFile(ctx, store, f)
		if err != nil {
			return res, &PartialError{File: f.Name, Table: f.TableName, Committed: res.Tables, Err: err}
		}
		res.Tables = append(res.Tables, f.TableName)
		res.Rows += report.Rows
		res.Files = append(res.Files, report)
		l.logger.Verbose("Loaded %d row(s) into %s in %s (sha256 %s, normalized %s)",
			report.Rows, f.TableName, l.now().Sub(fileStart).Round(time.Millisecond),
			report.Checksum, report.NormalizedChecksum)
	}

	l.logger.Info("------------------Ingestion complete------------------")
	l.logger.Info("Total time taken %.2f minutes", l.now().Sub(start).Minutes())
	return res, nil
}

// loadFile reads one CSV file and replaces its table. The file is
// checksummed while it is parsed.
func (l *Loader) loadFile(ctx context.Context, store vendorsum.Store, f vendorsum.SourceFile) (FileReport, error) {
	report := FileReport{File: f.Name, Table: f.TableName}

	r, err := l.fsProvider.Open(f.Path)
	if err != nil {
		return report, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer r.Close()

	digest := checksum.NewDigest()
	t, err := csvtable.Read(digest.Reader(r), csvtable.ReadOptions{})
	if err != nil {
		return report, fmt.Errorf("failed to parse %s: %w", f.Path, err)
	}

	if err := store.WriteTable(ctx, f.TableName, t, vendorsum.IfExistsReplace); err != nil {
		return report, fmt.Errorf("failed to write table %s: %w", f.TableName, err)
	}
	report.Rows = t.Len()
	report.Checksum = digest.Raw()
	report.NormalizedChecksum = digest.Normalized()
	return report, nil
}
