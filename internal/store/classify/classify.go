package classify

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// PostgreSQL error classes that indicate the connection, not the statement, failed.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgClassConnectionException   = "08"
	pgClassInsufficientResources = "53"
	pgClassOperatorIntervention  = "57P"
)

var connectionPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"conn closed",
	"unable to open database file",
}

// IsConnectionError reports whether err means the store could not be
// reached or the connection was lost.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isConnectionPgCode(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range connectionPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func isConnectionPgCode(code string) bool {
	return strings.HasPrefix(code, pgClassConnectionException) ||
		strings.HasPrefix(code, pgClassInsufficientResources) ||
		strings.HasPrefix(code, pgClassOperatorIntervention)
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

// IsTransient reports whether a failed connection attempt is worth
// repeating: a connection error other than an unknown host or a SQLite file
// that cannot be opened.
func IsTransient(err error) bool {
	if !IsConnectionError(err) {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}
	msg := strings.ToLower(err.Error())
	return !strings.Contains(msg, "no such host") && !strings.Contains(msg, "unable to open database file")
}

// Wrap tags err with vendorsum.ErrConnectionFailed when it is a
// connectivity failure. Other errors, and nil, are returned unchanged.
func Wrap(err error) error {
	if err == nil || errors.Is(err, vendorsum.ErrConnectionFailed) || !IsConnectionError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", vendorsum.ErrConnectionFailed, err)
}
