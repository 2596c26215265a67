package upload

import (
	"errors"

	"github.com/dmitrymomot/filedrop/pkg/randname"
	"github.com/dmitrymomot/filedrop/storage"
)

// Client rejections: caused by the uploaded content itself, always
// reported back to the caller, never retried.
var (
	// ErrNoFileProvided is returned when the request carries no file
	ErrNoFileProvided = errors.New("no file provided")

	// ErrTooLarge is returned when the upload exceeds the configured maximum size
	ErrTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrDisallowedExtension is returned when the declared extension is not allow-listed
	ErrDisallowedExtension = errors.New("file extension is not allowed")

	// ErrContentMismatch is returned when the sniffed content type contradicts the declared extension
	ErrContentMismatch = errors.New("file content does not match declared extension")
)

// Server failures: infrastructure problems, logged in full and
// surfaced to the caller as a generic failure.
var (
	// ErrExhaustedAttempts signals the name allocator ran out of retries
	ErrExhaustedAttempts = randname.ErrExhaustedAttempts

	// ErrStorageWrite is returned when the final write to storage fails
	ErrStorageWrite = errors.New("failed to write upload to storage")

	// ErrSanitizeFailed is returned when an image cannot be re-encoded
	// despite passing content validation
	ErrSanitizeFailed = errors.New("failed to sanitize image")

	// ErrDirectoryUnwritable signals the storage root rejects writes
	ErrDirectoryUnwritable = storage.ErrDirectoryUnwritable
)

// IsClientError reports whether err is caused by the upload itself
// rather than by the service, and is therefore safe to detail in the
// HTTP response.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoFileProvided) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrDisallowedExtension) ||
		errors.Is(err, ErrContentMismatch)
}
