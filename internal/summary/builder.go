package summary

import (
	"context"
	"time"

	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/internal/schema"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Result summarises a summary run.
type Result struct {
	// Rows is the number of summary rows written.
	Rows int

	// Elapsed is the wall time of the run, including failed runs.
	Elapsed time.Duration
}

// Builder runs the query, clean and sink stages against one store.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Builder struct {
	opener     vendorsum.StoreOpener
	fsProvider filesystem.FileSystemProvider
	checker    *schema.Checker
	logger     vendorsum.Logger
	now        func() time.Time
}

// NewBuilder creates a Builder with all dependencies injected.
// Panics on nil dependencies.
func NewBuilder(
	opener vendorsum.StoreOpener,
	fsProvider filesystem.FileSystemProvider,
	logger vendorsum.Logger,
) *Builder {
	if opener == nil {
		panic("opener cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Builder{
		opener:     opener,
		fsProvider: fsProvider,
		checker:    schema.NewChecker(logger),
		logger:     logger,
		now:        time.Now,
	}
}

// Run builds the summary described by cfg. Errors are logged before they
// are returned, and the store is closed on every path once opened.
func (b *Builder) Run(ctx context.Context, cfg vendorsum.SummaryConfig) (res Result, err error) {
	start := b.now()
	b.logger.Info("Summary run started.")
	defer func() {
		res.Elapsed = b.now().Sub(start)
		if err != nil {
			b.logger.Error("An error occurred: %v", err)
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

	store, err := b.opener(ctx, &cfg.Store)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			b.logger.Error("Failed to close database connection: %v", cerr)
			return
		}
		b.logger.Info("Database connection closed.")
	}()
	b.logger.Verbose("Connected to %s", cfg.Store.String())

	if cfg.SkipSchemaCheck {
		b.logger.Verbose("Schema check skipped")
	} else if err := b.checker.Check(ctx, store, schema.SummaryInputs); err != nil {
		return res, err
	}

	b.logger.Info("Creating vendor summary table.....")
	queryStart := b.now()
	t, err := Query(ctx, store)
	if err != nil {
		return res, err
	}
	b.logger.Info("Summary table created with %d rows.", t.Len())
	b.logger.Verbose("Aggregation query took %s", b.now().Sub(queryStart).Round(time.Millisecond))

	b.logger.Info("Cleaning Data.....")
	if err := Clean(t); err != nil {
		return res, err
	}
	b.logger.Info("Data cleaning complete.")

	b.logger.Info("Writing %s and table %s.....", cfg.OutputPath, cfg.SummaryTable)
	if err := WriteAll(ctx, t,
		NewCSVSink(b.fsProvider, cfg.OutputPath),
		NewStoreSink(store, cfg.SummaryTable),
	); err != nil {
		return res, err
	}
	b.logger.Info("Ingestion complete.")

	res.Rows = t.Len()
	return res, nil
}
