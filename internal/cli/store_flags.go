package cli

import (
	"github.com/spf13/cobra"

	"github.com/nipunchauhan/vendorsum/internal/config"
	"github.com/nipunchauhan/vendorsum/internal/store"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// storeFlagValues holds the store-selection flag values of one command.
type storeFlagValues struct {
	backend        string
	sqlitePath     string
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	azure          bool
	azureTenantID  string
	azureClientID  string
	connectRetries int
}

// addStoreFlags registers the store flags on cmd, bound to f.
func addStoreFlags(cmd *cobra.Command, f *storeFlagValues) {
	cmd.Flags().StringVar(&f.backend, "backend", "",
		"Store backend: sqlite|postgres\n"+
			"Precedence: --backend > $VENDORSUM_BACKEND > vendorsum.yaml >\n"+
			"postgres if any connection setting is given > sqlite")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite-path", "",
		"SQLite database file\n"+
			"Precedence: --sqlite-path > $VENDORSUM_SQLITE_PATH > vendorsum.yaml > inventory.db")

	// Connection string flag (mutually exclusive with granular flags)
	cmd.Flags().StringVar(&f.connection, "connection", "",
		"PostgreSQL connection string (URI or ADO.NET format).\n"+
			"Mutually exclusive with granular flags (--host, --port, --username).\n"+
			"Alternative: Use VENDORSUM_CONNECTION_STRING or DATABASE_URL environment variable.\n"+
			"Example: postgresql://user@localhost:5432/inventory")

	// Granular connection flags (PostgreSQL standard)
	cmd.Flags().StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > localhost")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > 5432")
	cmd.Flags().StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	cmd.Flags().StringVarP(&f.database, "database", "d", "",
		"Database name (overrides the connection string database, or $PGDATABASE)")
	cmd.Flags().StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")

	// Cloud authentication flags
	cmd.Flags().BoolVar(&f.aws, "aws", false,
		"Enable AWS RDS IAM authentication (credentials from the default AWS chain)")
	cmd.Flags().StringVar(&f.awsRegion, "aws-region", "",
		"AWS region for IAM tokens (overrides $AWS_REGION)")
	cmd.Flags().BoolVar(&f.google, "google", false,
		"Enable Google Cloud SQL IAM authentication")
	cmd.Flags().StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")
	cmd.Flags().BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential chain (Managed Identity, Azure CLI, etc.)")
	cmd.Flags().StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	cmd.Flags().StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")

	cmd.Flags().IntVar(&f.connectRetries, "connect-retries", 0,
		"Retry a PostgreSQL connection that fails transiently this many times,\n"+
			"with exponential backoff (default: 0, a single attempt)\n"+
			"Precedence: --connect-retries > store.connection.connect_retries in vendorsum.yaml")

	registerStoreCompletions(cmd)
}

func (f *storeFlagValues) toStoreFlags() *store.StoreFlags {
	return &store.StoreFlags{
		Backend:    f.backend,
		SQLitePath: f.sqlitePath,
		Connection: f.connection,
		Granular: store.GranularConnFlags{
			Host:     f.host,
			Port:     f.port,
			Username: f.username,
			Database: f.database,
			SSLMode:  f.sslMode,
		},
		Auth: store.AuthFlags{
			AWS:            f.aws,
			AWSRegion:      f.awsRegion,
			Google:         f.google,
			GoogleInstance: f.googleInstance,
			Azure:          f.azure,
			AzureTenantID:  f.azureTenantID,
			AzureClientID:  f.azureClientID,
		},
		ConnectRetries: f.connectRetries,
	}
}

// resolveStoreFromFlags resolves the store configuration from flags, the
// environment and vendorsum.yaml.
func resolveStoreFromFlags(f *storeFlagValues, projectCfg *config.ProjectConfig) (*vendorsum.StoreConfig, error) {
	return store.ResolveStoreConfig(f.toStoreFlags(), store.LoadFromEnvironment(), projectCfg)
}
