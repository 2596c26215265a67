package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/filedrop/upload"
)

// UploadResponse is the success body: the fully-qualified public URL of
// the stored asset.
type UploadResponse struct {
	URL string `json:"url"`
}

// ErrorResponse carries a machine-readable reason tag.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Reason tags reported to clients.
const (
	reasonNoFile              = "no_file_provided"
	reasonTooLarge            = "too_large"
	reasonDisallowedExtension = "disallowed_extension"
	reasonContentMismatch     = "content_mismatch"
	reasonBadRequest          = "bad_request"

	// reasonUploadFailed covers every server-side failure; details are
	// logged, never leaked to the caller.
	reasonUploadFailed = "upload_failed"
)

// rejection maps a pipeline error to an HTTP status and reason tag.
func rejection(err error) (int, string) {
	switch {
	case errors.Is(err, upload.ErrNoFileProvided):
		return http.StatusBadRequest, reasonNoFile
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, reasonTooLarge
	case errors.Is(err, upload.ErrDisallowedExtension):
		return http.StatusUnsupportedMediaType, reasonDisallowedExtension
	case errors.Is(err, upload.ErrContentMismatch):
		return http.StatusUnsupportedMediaType, reasonContentMismatch
	default:
		return http.StatusInternalServerError, reasonUploadFailed
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
