// Package imgclean strips hidden payloads from raster images by a
// decode-then-encode round trip.
//
// A byte-level chunk filter would miss payloads hidden in places the
// format parser tolerates (trailing bytes after the image end marker,
// oversized ancillary chunks); re-encoding from decoded pixel data
// keeps only what a renderer would actually display.
package imgclean
