// Package api exposes the upload pipeline over HTTP: a single
// multipart upload endpoint, a health probe carrying degraded-mode
// advisories, and prometheus metrics.
//
// Client rejections answer with a machine-readable reason tag; server
// failures answer with a generic tag so filesystem details never leak.
package api
