package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nipunchauhan/vendorsum/internal/config"
	"github.com/nipunchauhan/vendorsum/internal/files/filesystem"
	"github.com/nipunchauhan/vendorsum/internal/store"
	"github.com/nipunchauhan/vendorsum/internal/summary"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Build the vendor sales summary",
	Long: `Summary builds the vendor sales summary from the ingested tables
vendor_invoice, Purchases, purchase_prices and Sales.

The summary command:
1. Checks that the input tables and columns exist (skip with --skip-schema-check)
2. Rolls up freight, purchases and sales per vendor and brand
3. Fills missing values, trims names and adds GrossProfit, ProfitMargin,
   StockTurnover and SalesToPurchaseRatio
4. Writes the result to a CSV file and to a store table (both replaced)

Division by zero in the derived metrics yields inf, -inf or NaN.

Log file: <log-dir>/get_vendor_summary.log (appended)

Examples:
  # Build vendor_summary_output.csv and vendor_sales_summary in ./inventory.db
  vendorsum summary

  # Write the CSV elsewhere
  vendorsum summary --output reports/summary.csv`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

type summaryFlagValues struct {
	store           storeFlagValues
	output          string
	table           string
	skipSchemaCheck bool
	timeout         time.Duration
}

var summaryFlags summaryFlagValues

func init() {
	rootCmd.AddCommand(summaryCmd)

	addStoreFlags(summaryCmd, &summaryFlags.store)
	summaryCmd.Flags().StringVarP(&summaryFlags.output, "output", "o", "",
		"CSV output file, overwritten\n"+
			"Precedence: --output > paths.output_csv in vendorsum.yaml > vendor_summary_output.csv")
	summaryCmd.Flags().StringVar(&summaryFlags.table, "table", "",
		"Store table for the summary, replaced\n"+
			"Precedence: --table > summary_table in vendorsum.yaml > vendor_sales_summary")
	summaryCmd.Flags().BoolVar(&summaryFlags.skipSchemaCheck, "skip-schema-check", false,
		"Do not verify input tables before running the query")
	summaryCmd.Flags().DurationVar(&summaryFlags.timeout, "timeout", 0,
		"Abort the run after this long (default: no timeout)\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildSummaryConfig builds a SummaryConfig from CLI flags, environment and
// vendorsum.yaml.
func buildSummaryConfig(cmd *cobra.Command, projectCfg *config.ProjectConfig) (vendorsum.SummaryConfig, error) {
	storeCfg, err := resolveStoreFromFlags(&summaryFlags.store, projectCfg)
	if err != nil {
		return vendorsum.SummaryConfig{}, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, summaryFlags.timeout)
	if err != nil {
		return vendorsum.SummaryConfig{}, err
	}

	var yamlTable string
	if projectCfg != nil {
		yamlTable = projectCfg.SummaryTable
	}

	cfg := vendorsum.SummaryConfig{
		Store:           *storeCfg,
		OutputPath:      firstNonEmpty(summaryFlags.output, pathsConfig(projectCfg).OutputCSV, vendorsum.DefaultOutputCSV),
		SummaryTable:    firstNonEmpty(summaryFlags.table, yamlTable, vendorsum.TableVendorSalesSummary),
		SkipSchemaCheck: summaryFlags.skipSchemaCheck,
		Timeout:         timeout,
	}
	return cfg, cfg.Validate()
}

func runSummary(cmd *cobra.Command, args []string) error {
	projectCfg, err := loadProjectConfig(globalFlags.configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := openRunLogger(cmd, projectCfg, vendorsum.SummaryLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	return runTimed(cmd, logger, "Summary", func(ctx context.Context) error {
		cfg, err := buildSummaryConfig(cmd, projectCfg)
		if err != nil {
			logger.Error("An error occurred: %v", err)
			return err
		}
		logger.Verbose("Store resolved: %s", cfg.Store.String())

		builder := summary.NewBuilder(store.NewOpener(logger), filesystem.NewOSFileSystem(), logger)
		_, err = builder.Run(ctx, cfg)
		return err
	})
}
