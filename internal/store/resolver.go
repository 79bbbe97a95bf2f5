package store

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nipunchauhan/vendorsum/internal/config"
	"github.com/nipunchauhan/vendorsum/internal/store/postgres"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// GranularConnFlags holds connection parameters from CLI flags, following
// PostgreSQL conventions (-h, -p, -U, -d). There is no password flag:
// use $PGPASSWORD or a connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no server-addressing flag was given. Database is
// excluded because it may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// AuthFlags selects cloud authentication.
type AuthFlags struct {
	AWS       bool
	AWSRegion string

	Google         bool
	GoogleInstance string

	Azure         bool
	AzureTenantID string // Overrides AZURE_TENANT_ID
	AzureClientID string // Overrides AZURE_CLIENT_ID
}

// StoreFlags is everything the CLI knows about the store.
type StoreFlags struct {
	Backend        string
	SQLitePath     string
	Connection     string
	Granular       GranularConnFlags
	Auth           AuthFlags
	ConnectRetries int
}

// EnvVars captures the environment variables that influence resolution.
type EnvVars struct {
	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	DATABASE_URL                string // Heroku/Rails convention
	VENDORSUM_CONNECTION_STRING string
	VENDORSUM_BACKEND           string
	VENDORSUM_SQLITE_PATH       string

	AWS_REGION string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:                      os.Getenv("PGHOST"),
		PGPORT:                      os.Getenv("PGPORT"),
		PGUSER:                      os.Getenv("PGUSER"),
		PGPASSWORD:                  os.Getenv("PGPASSWORD"),
		PGDATABASE:                  os.Getenv("PGDATABASE"),
		PGSSLMODE:                   os.Getenv("PGSSLMODE"),
		DATABASE_URL:                os.Getenv("DATABASE_URL"),
		VENDORSUM_CONNECTION_STRING: os.Getenv("VENDORSUM_CONNECTION_STRING"),
		VENDORSUM_BACKEND:           os.Getenv("VENDORSUM_BACKEND"),
		VENDORSUM_SQLITE_PATH:       os.Getenv("VENDORSUM_SQLITE_PATH"),
		AWS_REGION:                  os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:             os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:             os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:         os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// hasPostgresHints reports whether anything outside the backend setting
// points at a PostgreSQL server.
func (f *StoreFlags) hasPostgresHints(env *EnvVars) bool {
	return f.Connection != "" || !f.Granular.IsEmpty() || f.Granular.Database != "" ||
		f.Auth.AWS || f.Auth.Google || f.Auth.Azure ||
		env.VENDORSUM_CONNECTION_STRING != "" || env.DATABASE_URL != ""
}

// ResolveStoreConfig decides the backend and its parameters.
//
// Backend: --backend > $VENDORSUM_BACKEND > vendorsum.yaml > postgres when
// any PostgreSQL connection setting is present > sqlite.
// SQLite path: --sqlite-path > $VENDORSUM_SQLITE_PATH > vendorsum.yaml > inventory.db.
func ResolveStoreConfig(flags *StoreFlags, env *EnvVars, projectConfig *config.ProjectConfig) (*vendorsum.StoreConfig, error) {
	if flags == nil {
		flags = &StoreFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var pc config.StoreConfig
	if projectConfig != nil {
		pc = projectConfig.Store
	}

	backendName := firstNonEmpty(flags.Backend, env.VENDORSUM_BACKEND, pc.Backend)
	if backendName == "" {
		backendName = string(vendorsum.BackendSQLite)
		if flags.hasPostgresHints(env) {
			backendName = string(vendorsum.BackendPostgres)
		}
	}
	backend, err := vendorsum.ParseBackend(backendName)
	if err != nil {
		return nil, err
	}

	cfg := &vendorsum.StoreConfig{Backend: backend}
	switch backend {
	case vendorsum.BackendSQLite:
		if flags.Connection != "" || !flags.Granular.IsEmpty() || flags.ConnectRetries != 0 {
			return nil, fmt.Errorf("%w: PostgreSQL connection flags cannot be used with the sqlite backend", vendorsum.ErrInvalidConfig)
		}
		cfg.SQLitePath = firstNonEmpty(flags.SQLitePath, env.VENDORSUM_SQLITE_PATH, pc.SQLitePath, vendorsum.DefaultSQLitePath)
	case vendorsum.BackendPostgres:
		if flags.SQLitePath != "" {
			return nil, fmt.Errorf("%w: --sqlite-path cannot be used with the postgres backend", vendorsum.ErrInvalidConfig)
		}
		cfg.Connection, err = ResolveConnectionParams(flags.Connection, &flags.Granular, &flags.Auth, env, projectConfig)
		if err != nil {
			return nil, err
		}
		cfg.Connection.ConnectRetries = vendorsum.DefaultConnectRetries
		if flags.ConnectRetries != 0 {
			cfg.Connection.ConnectRetries = flags.ConnectRetries
		} else if pc.Connection.ConnectRetries != 0 {
			cfg.Connection.ConnectRetries = pc.Connection.ConnectRetries
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveConnectionParams resolves PostgreSQL connection parameters:
//
//  1. --connection flag, parsed directly
//  2. $VENDORSUM_CONNECTION_STRING, then $DATABASE_URL, when no granular flags are set
//  3. granular flags > PG* environment > vendorsum.yaml > defaults
//
// -d/--database always overrides the database of a connection string.
// Providing both --connection and granular server flags is an error.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	authFlags *AuthFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*vendorsum.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if authFlags == nil {
		authFlags = &AuthFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Store.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot specify both --connection and granular flags (-h, -p, -U)\n"+
			"Choose one approach:\n"+
			"  1. Connection string: --connection \"postgresql://user@localhost:5432/inventory\"\n"+
			"  2. Granular flags: -h localhost -p 5432 -U myuser -d inventory\n"+
			"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
			vendorsum.ErrInvalidConfig)
	}

	var cfg *vendorsum.ConnectionConfig
	var err error
	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.VENDORSUM_CONNECTION_STRING != "":
		cfg, err = resolveFromConnectionString(envVars.VENDORSUM_CONNECTION_STRING, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, err
	}

	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}
	if cfg.Database == "" {
		cfg.Database = firstNonEmpty(envVars.PGDATABASE, pc.Database, vendorsum.DefaultManagementDB)
	}
	if cfg.AppName == "" {
		cfg.AppName = vendorsum.DefaultAppName
	}

	if err := applyAuth(cfg, authFlags, envVars, pc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveFromConnectionString(connStr string, envVars *EnvVars) (*vendorsum.ConnectionConfig, error) {
	cfg, err := postgres.ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %w", vendorsum.ErrInvalidConfig, err)
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}
	return cfg, nil
}

func resolveFromGranularParams(flags *GranularConnFlags, envVars *EnvVars, pc config.ConnectionConfig) (*vendorsum.ConnectionConfig, error) {
	cfg := &vendorsum.ConnectionConfig{
		AuthMethod:       vendorsum.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, postgres.DefaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid $PGPORT value '%s': must be an integer", vendorsum.ErrInvalidConfig, envVars.PGPORT)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = postgres.DefaultPort
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, postgres.DefaultSSLMode)

	return cfg, nil
}

// applyAuth picks the authentication method. Flags win over vendorsum.yaml's
// auth_method; Azure environment credentials alone also select Azure.
func applyAuth(cfg *vendorsum.ConnectionConfig, flags *AuthFlags, env *EnvVars, pc config.ConnectionConfig) error {
	selected := 0
	for _, on := range []bool{flags.AWS, flags.Google, flags.Azure} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return fmt.Errorf("%w: choose only one of --aws, --google, --azure", vendorsum.ErrInvalidConfig)
	}

	method := ""
	switch {
	case flags.AWS:
		method = "aws"
	case flags.Google:
		method = "google"
	case flags.Azure, flags.AzureTenantID != "", flags.AzureClientID != "":
		method = "azure"
	case pc.AuthMethod != "":
		method = pc.AuthMethod
	case env.AZURE_TENANT_ID != "" || env.AZURE_CLIENT_ID != "":
		method = "azure"
	}

	switch method {
	case "", "standard", "password":
		cfg.AuthMethod = vendorsum.AuthMethodStandard
	case "aws":
		cfg.AuthMethod = vendorsum.AuthMethodAWSIAM
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	case "google":
		cfg.AuthMethod = vendorsum.AuthMethodGoogleIAM
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	case "azure":
		cfg.AuthMethod = vendorsum.AuthMethodAzureEntraID
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	default:
		return fmt.Errorf("%w: auth_method %q", vendorsum.ErrUnsupportedAuthMethod, method)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
