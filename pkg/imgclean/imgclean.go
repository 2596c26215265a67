package imgclean

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
)

var (
	// ErrDecodeFailed is returned when the source bytes cannot be
	// decoded as an image in the expected format.
	ErrDecodeFailed = errors.New("failed to decode image")

	// ErrEncodeFailed is returned when re-encoding or writing the
	// cleaned image fails.
	ErrEncodeFailed = errors.New("failed to encode image")

	// ErrUnsupportedFormat is returned for formats the sanitizer has no
	// re-encoder for.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Reencode decodes r as an image and writes a fresh encoding of the
// decoded pixel data to w. Everything that is not representable in the
// decoded pixels is destroyed in the round trip: textual metadata,
// color profiles, embedded thumbnails, custom application chunks and
// any payload appended after the end-of-image marker.
//
// format names the expected image format ("png"); the source is
// rejected if it decodes as anything else, so a file that merely
// resembles an image in another container cannot slip through.
func Reencode(r io.Reader, w io.Writer, format string) error {
	img, got, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if got != format {
		return fmt.Errorf("%w: expected %s, decoded %s", ErrDecodeFailed, format, got)
	}

	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
