// Package bytesize parses human-readable size strings ("8M", "2G") into
// integer byte counts using binary (1024-based) multipliers.
//
// The package mirrors the forgiving semantics of ini-style size limits:
// parsing never fails, unknown units are ignored and malformed numbers
// degrade to zero.
package bytesize
