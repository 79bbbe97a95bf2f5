package summary

import (
	"context"
	"errors"

	"github.com/nipunchauhan/vendorsum/internal/csvtable"
	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Sink persists a finished summary table.
type Sink interface {
	Write(ctx context.Context, t *vendorsum.Table) error
}

// CSVSink writes the table as a comma-separated file with a header row,
// truncating any existing file. The parent directory must exist.
type CSVSink struct {
	fsProvider filesystem.FileSystemProvider
	path       string
}

// NewCSVSink creates a CSVSink writing to path.
func NewCSVSink(fsProvider filesystem.FileSystemProvider, path string) *CSVSink {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &CSVSink{fsProvider: fsProvider, path: path}
}

// Write implements Sink. Failures are returned as *vendorsum.SinkWriteError.
func (s *CSVSink) Write(_ context.Context, t *vendorsum.Table) error {
	if err := s.write(t); err != nil {
		return &vendorsum.SinkWriteError{Sink: vendorsum.SinkCSV, Target: s.path, Err: err}
	}
	return nil
}

func (s *CSVSink) write(t *vendorsum.Table) (err error) {
	w, err := s.fsProvider.Create(s.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return csvtable.Write(w, t)
}

// StoreSink writes the table to a store table, replacing it if present.
type StoreSink struct {
	store vendorsum.Store
	table string
}

// NewStoreSink creates a StoreSink writing to table.
func NewStoreSink(store vendorsum.Store, table string) *StoreSink {
	if store == nil {
		panic("store cannot be nil")
	}
	return &StoreSink{store: store, table: table}
}

// Write implements Sink. Failures are returned as *vendorsum.SinkWriteError.
func (s *StoreSink) Write(ctx context.Context, t *vendorsum.Table) error {
	if err := s.store.WriteTable(ctx, s.table, t, vendorsum.IfExistsReplace); err != nil {
		return &vendorsum.SinkWriteError{Sink: vendorsum.SinkStore, Target: s.table, Err: err}
	}
	return nil
}

// WriteAll attempts every sink regardless of earlier failures. A single
// failure is returned as is; several are joined with errors.Join. Sinks
// that succeeded are not rolled back.
func WriteAll(ctx context.Context, t *vendorsum.Table, sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Write(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
