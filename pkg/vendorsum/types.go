package vendorsum

import (
	"errors"
	"fmt"
	"time"
)

// Backend identifies the store engine.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// ParseBackend converts a backend name to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendPostgres, "postgresql", "pg":
		return BackendPostgres, nil
	case BackendSQLite, "sqlite3":
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (use postgres or sqlite)", ErrUnsupportedBackend, s)
	}
}

// StoreConfig selects and configures the store a run works against.
type StoreConfig struct {
	Backend Backend

	// SQLitePath is the database file for BackendSQLite.
	SQLitePath string

	// Connection is used for BackendPostgres.
	Connection *ConnectionConfig
}

// Validate checks that the fields required by the selected backend are set.
func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLitePath is required for the sqlite backend: %w", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.Connection == nil {
			return fmt.Errorf("Connection is required for the postgres backend: %w", ErrInvalidConfig)
		}
		if c.Connection.Database == "" {
			return fmt.Errorf("database name is required for the postgres backend: %w", ErrInvalidConfig)
		}
		if c.Connection.ConnectRetries < 0 {
			return fmt.Errorf("connect retries cannot be negative: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, c.Backend)
	}
	return nil
}

// String describes the store without secrets, for logging.
func (c *StoreConfig) String() string {
	if c.Backend == BackendSQLite {
		return fmt.Sprintf("sqlite(%s)", c.SQLitePath)
	}
	if c.Connection == nil {
		return string(c.Backend)
	}
	return fmt.Sprintf("postgres(%s@%s:%d/%s, auth=%s)",
		c.Connection.Username, c.Connection.Host, c.Connection.Port, c.Connection.Database, c.Connection.AuthMethod)
}

// ConnectionConfig represents parsed PostgreSQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// Otherwise the DefaultAzureCredential chain is used.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	// used with AuthMethodGoogleIAM.
	GoogleInstance string

	// ConnectRetries is how many times a transiently failed connection
	// attempt is repeated. Zero means one attempt only.
	ConnectRetries int
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google Cloud SQL IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return "Unknown"
	}
}

// SummaryConfig contains all parameters needed for a summary run.
type SummaryConfig struct {
	Store StoreConfig

	// OutputPath is the CSV file the summary is written to (overwritten).
	OutputPath string

	// SummaryTable is the store table the summary is written to (replaced).
	SummaryTable string

	// SkipSchemaCheck disables the required-table check before the query.
	SkipSchemaCheck bool

	// Timeout bounds the whole run; zero means no timeout.
	Timeout time.Duration
}

// Validate checks if the SummaryConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SummaryConfig) Validate() error {
	var errs []error

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}
	if c.SummaryTable == "" {
		errs = append(errs, fmt.Errorf("SummaryTable is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// IngestConfig contains all parameters needed for a loader run.
type IngestConfig struct {
	Store StoreConfig

	// DataDir holds the raw *.csv files.
	DataDir string

	// Timeout bounds the whole run; zero means no timeout.
	Timeout time.Duration
}

// Validate checks if the IngestConfig has all required fields and valid values.
func (c *IngestConfig) Validate() error {
	var errs []error

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
