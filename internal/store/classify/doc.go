// Package classify decides whether a store error is a connectivity failure
// (server unreachable, connection dropped, resources exhausted) as opposed
// to a problem with the statement or data.
//
// Wrap changes how an error is reported and therefore the CLI exit code.
// IsTransient picks the connection failures worth retrying when a
// PostgreSQL store is opened with connect retries enabled; statements are
// never retried.
package classify
