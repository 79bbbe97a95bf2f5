package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nipunchauhan/vendorsum/internal/retry"
	"github.com/nipunchauhan/vendorsum/internal/store/classify"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// Pool configuration. A run is sequential, so one connection is enough.
const (
	DefaultMaxConns        = 1
	DefaultMaxConnIdleTime = 30 * time.Minute

	// tokenExpiryWarning is how close to expiry a cloud token triggers a warning.
	tokenExpiryWarning = 5 * time.Minute
)

// Connector establishes a connection pool using one authentication method.
type Connector interface {
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

func configurePool(poolConfig *pgxpool.Config, logger vendorsum.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("server notice: %s", notice.Message)
	}
}

// openPool parses connStr, builds the pool and pings it. Transient connection
// failures are retried cfg.ConnectRetries times with exponential backoff.
func openPool(ctx context.Context, connStr string, cfg *vendorsum.ConnectionConfig, logger vendorsum.Logger, tune func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	configurePool(poolConfig, logger)
	if tune != nil {
		tune(poolConfig)
	}

	var pool *pgxpool.Pool
	err = newConnectExecutor(cfg.ConnectRetries, logger).Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}
	return pool, nil
}

func newConnectExecutor(retries int, logger vendorsum.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(retries,
		retry.WithInitialDelay(vendorsum.DefaultRetryInitialDelay),
		retry.WithMaxDelay(vendorsum.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.ClassifierFunc(classify.IsTransient), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed: %v (retrying in %s)", attempt+1, err, delay.Round(time.Millisecond))
		})
}

// StandardConnector connects with username and password.
type StandardConnector struct {
	config *vendorsum.ConnectionConfig
	logger vendorsum.Logger
}

// NewStandardConnector creates a StandardConnector.
func NewStandardConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) *StandardConnector {
	return &StandardConnector{config: config, logger: logger}
}

// Connect establishes the connection pool.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return openPool(ctx, BuildConnectionString(c.config), c.config, c.logger, nil)
}

// NewConnector creates the Connector matching config.AuthMethod.
func NewConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) (Connector, error) {
	switch config.AuthMethod {
	case vendorsum.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case vendorsum.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case vendorsum.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case vendorsum.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, vendorsum.ErrUnsupportedAuthMethod)
	}
}

func newAWSConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) (Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

func newGoogleConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) (Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", vendorsum.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U): %w", vendorsum.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, logger), nil
}

// newAzureConnector uses Service Principal auth when tenant, client and
// secret are all set, and the DefaultAzureCredential chain otherwise.
func newAzureConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) (Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or the connection string)
  - Wrong username
  - User does not have access to the database

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)

Original error: %w`, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
