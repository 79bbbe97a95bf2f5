package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vendorsum",
	Short: "Vendor sales summary builder",
	Long: `vendorsum loads raw inventory CSV files into a relational store and builds
a per-vendor, per-brand sales and purchase summary from them.

  vendorsum ingest [data_dir]   load every *.csv in data_dir as a table
  vendorsum summary             build vendor_summary_output.csv and the
                                vendor_sales_summary table

The store is a SQLite file (inventory.db) unless PostgreSQL connection
settings are given by flag, environment or vendorsum.yaml.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or flags
  11 - Store connection failed
  12 - Required input table or column missing (run ingest first)
  13 - Volume column is not numeric
  14 - CSV file or store table could not be written
  15 - Aggregation query failed
  16 - Ingestion stopped part way through the data directory`,
	SilenceUsage: true,
}

// globalFlags are the persistent flags shared by every command.
var globalFlags struct {
	verbose    bool
	configPath string
	logDir     string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is taken by --host, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for vendorsum")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false,
		"Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Path to the project config file (default: ./vendorsum.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logDir, "log-dir", "",
		"Directory for log files\n"+
			"Precedence: --log-dir > paths.log_dir in vendorsum.yaml > logs")
}
