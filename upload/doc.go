// Package upload implements the admission pipeline between "bytes
// arrived from a client" and "bytes are safely persisted under a
// unique name".
//
// The pipeline runs strictly ordered gates, first failure wins:
//
//	size check → extension check → content-sniff check →
//	name allocation → sanitize-or-store → URL construction
//
// Rejections caused by the upload itself (too large, disallowed
// extension, content mismatch, no file) are client errors and safe to
// report verbatim; everything else is a server failure reported
// generically and logged in full. IsClientError separates the two.
//
// Raster images are re-encoded from decoded pixel data before storage,
// destroying steganographic payloads hidden outside the pixels. When
// that capability is switched off the pipeline stores images raw and
// reports the gap through Capabilities.Advisories instead of rejecting
// the upload.
package upload
