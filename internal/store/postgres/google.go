package postgres

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// GoogleCloudSQLConnector connects to Google Cloud SQL with IAM database
// authentication through the Cloud SQL Go Connector.
//
// The connector owns a dialer: call Close after the pool is closed.
type GoogleCloudSQLConnector struct {
	config *vendorsum.ConnectionConfig
	logger vendorsum.Logger
	dialer *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for config.GoogleInstance
// (project:region:instance).
func NewGoogleCloudSQLConnector(config *vendorsum.ConnectionConfig, logger vendorsum.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, logger: logger}
}

// Connect establishes the connection pool. The connector handles TLS itself.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable",
		c.config.GoogleInstance, c.config.Username, c.config.Database)

	instance := c.config.GoogleInstance
	pool, err := openPool(ctx, dsn, c.config, c.logger, func(pc *pgxpool.Config) {
		pc.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.Dial(ctx, instance)
		}
	})
	if err != nil {
		dialer.Close()
		return nil, err
	}

	c.dialer = dialer
	return pool, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer == nil {
		return nil
	}
	err := c.dialer.Close()
	c.dialer = nil
	return err
}
