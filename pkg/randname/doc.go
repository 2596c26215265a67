// Package randname produces collision-free, URL-safe base identifiers
// for stored assets.
//
// Identifiers are 20 lowercase hex characters (80 bits of entropy) from
// crypto/rand. Allocate verifies the candidate against the storage
// namespace by prefix, enforcing uniqueness across all extensions at
// once, and retries a bounded number of times.
package randname
