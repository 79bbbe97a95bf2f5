// Package postgres implements vendorsum.Store on PostgreSQL with pgx/v5.
//
// A Store owns a pgxpool limited to a single connection. Bulk writes use the
// COPY protocol, and numeric aggregates are normalised to int64 or float64
// so callers see the same value kinds as with the SQLite backend.
//
// Connections authenticate with a password or with short-lived cloud
// credentials: AWS RDS IAM tokens, Azure Entra ID tokens, or the Google
// Cloud SQL connector with IAM authentication. Every connection attempt is
// made once; failures are returned wrapped with vendorsum.ErrConnectionFailed.
package postgres
