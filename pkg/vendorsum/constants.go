package vendorsum

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Run completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or flags
	ExitConnectionError  = 11 // Failed to open or reach the store
	ExitMissingTable     = 12 // Required input table or column missing
	ExitTypeConversion   = 13 // Volume column could not be coerced to a number
	ExitSinkWriteFailed  = 14 // CSV file or store table write failed
	ExitQueryFailed      = 15 // Aggregation query failed
	ExitIngestIncomplete = 16 // Loader stopped part way through the data directory
)

// Store table names shared between the loader and the summary builder.
const (
	TableVendorInvoice  = "vendor_invoice"
	TablePurchases      = "Purchases"
	TablePurchasePrices = "purchase_prices"
	TableSales          = "Sales"

	// TableVendorSalesSummary is the table the summary builder writes.
	TableVendorSalesSummary = "vendor_sales_summary"
)

const (
	// DefaultDataDir is the directory the loader reads raw CSV files from.
	DefaultDataDir = "data"

	// DefaultOutputCSV is the flat-file sink path of the summary builder.
	DefaultOutputCSV = "vendor_summary_output.csv"

	// DefaultSQLitePath is the SQLite database file used when no other store is configured.
	DefaultSQLitePath = "inventory.db"

	// DefaultLogDir holds one append-mode log file per entry point.
	DefaultLogDir = "logs"

	// IngestLogFile and SummaryLogFile are the per-entry-point log file names.
	IngestLogFile  = "ingestion_db.log"
	SummaryLogFile = "get_vendor_summary.log"

	// CSVExtension is the file extension recognised by the loader.
	CSVExtension = ".csv"

	// DefaultManagementDB is the database used when a connection string names none.
	DefaultManagementDB = "postgres"

	// DefaultAppName is reported to PostgreSQL as application_name.
	DefaultAppName = "vendorsum"
)

// Connection retry settings for the PostgreSQL store. Opening a store is
// single-shot unless ConnectionConfig.ConnectRetries asks for more.
const (
	// DefaultConnectRetries is the number of retries after a failed connection attempt.
	DefaultConnectRetries = 0

	// DefaultRetryInitialDelay is the wait before the first retry.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay caps the wait between retries.
	DefaultRetryMaxDelay = 1 * time.Minute
)
