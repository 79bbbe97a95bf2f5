package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// TokenProvider abstracts cloud token acquisition for database authentication.
type TokenProvider interface {
	// GetToken acquires a token that is used as the PostgreSQL password.
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider for logging. It must not include secrets.
	String() string
}

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// TokenBasedConnector connects with a short-lived token from a TokenProvider
// as the password (AWS IAM, Azure Entra ID).
type TokenBasedConnector struct {
	config        *vendorsum.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        vendorsum.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error and warning messages.
func NewTokenBasedConnector(config *vendorsum.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger vendorsum.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
	}
}

// Connect acquires a token and establishes the connection pool.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}
	c.logger.Verbose("Acquired %s token from %s", c.providerName, c.tokenProvider)

	if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token

	return openPool(ctx, BuildConnectionString(&configWithToken), c.config, c.logger, nil)
}
