package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nipunchauhan/vendorsum/internal/config"
	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/internal/files/scanner"
	"github.com/nipunchauhan/vendorsum/internal/ingest"
	"github.com/nipunchauhan/vendorsum/internal/store"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [data_dir]",
	Short: "Load raw CSV files into the store",
	Long: `Ingest loads every *.csv file directly inside data_dir into the store.

Each file becomes one table named after the file without its extension
(Purchases.csv -> Purchases). Existing tables are replaced. Files are loaded
in name order; a failure stops the run and leaves the tables already loaded
in place.

Arguments:
  data_dir    Directory holding the CSV files
              Precedence: argument > paths.data_dir in vendorsum.yaml > data

Log file: <log-dir>/ingestion_db.log (appended)

Examples:
  # Load ./data into ./inventory.db
  vendorsum ingest

  # Load another directory into PostgreSQL
  vendorsum ingest ./raw --connection postgresql://user@localhost/inventory`,
	Args:              OptionalDataDir,
	ValidArgsFunction: completeDataDir,
	RunE:              runIngest,
}

type ingestFlagValues struct {
	store   storeFlagValues
	timeout time.Duration
}

var ingestFlags ingestFlagValues

func init() {
	rootCmd.AddCommand(ingestCmd)

	addStoreFlags(ingestCmd, &ingestFlags.store)
	ingestCmd.Flags().DurationVar(&ingestFlags.timeout, "timeout", 0,
		"Abort the run after this long (default: no timeout)\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildIngestConfig builds an IngestConfig from CLI flags, environment and
// vendorsum.yaml.
func buildIngestConfig(cmd *cobra.Command, args []string, projectCfg *config.ProjectConfig) (vendorsum.IngestConfig, error) {
	storeCfg, err := resolveStoreFromFlags(&ingestFlags.store, projectCfg)
	if err != nil {
		return vendorsum.IngestConfig{}, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, ingestFlags.timeout)
	if err != nil {
		return vendorsum.IngestConfig{}, err
	}

	var dataDir string
	if len(args) > 0 {
		dataDir = args[0]
	}

	cfg := vendorsum.IngestConfig{
		Store:   *storeCfg,
		DataDir: firstNonEmpty(dataDir, pathsConfig(projectCfg).DataDir, vendorsum.DefaultDataDir),
		Timeout: timeout,
	}
	return cfg, cfg.Validate()
}

func runIngest(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(globalFlags.configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := openRunLogger(cmd, projectCfg, vendorsum.IngestLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	return runTimed(cmd, logger, "Ingest", func(ctx context.Context) error {
		cfg, err := buildIngestConfig(cmd, args, projectCfg)
		if err != nil {
			logger.Error("An error occurred: %v", err)
			return err
		}
		logger.Verbose("Store resolved: %s", cfg.Store.String())
		logger.Verbose("Data directory: %s", cfg.DataDir)

		fsProvider := filesystem.NewOSFileSystem()
		loader := ingest.NewLoader(store.NewOpener(logger), scanner.NewScannerWithFS(fsProvider), fsProvider, logger)
		res, err := loader.Run(ctx, cfg)
		if err == nil {
			logger.Info("Loaded %d table(s), %d row(s)", len(res.Tables), res.Rows)
		}
		return err
	})
}
