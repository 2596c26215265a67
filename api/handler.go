package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/filedrop/binder"
	"github.com/dmitrymomot/filedrop/pkg/logger"
	"github.com/dmitrymomot/filedrop/upload"
)

// uploadFieldName is the multipart form field carrying the file.
const uploadFieldName = "file"

// multipartOverhead generously covers boundary framing and part
// headers on top of the configured file size ceiling.
const multipartOverhead = 1 << 20

// UploadHandler accepts one multipart upload and runs it through the
// admission pipeline. The transport-level body cap is advisory armor
// only; the authoritative size check lives in the pipeline.
func UploadHandler(pipe *upload.Pipeline, maxSize int64, log *slog.Logger, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
		}

		file, err := binder.GetFileWithLimit(r, uploadFieldName, binder.DefaultMaxMemory)
		if err != nil {
			// A body cut off by the cap above is still an oversized
			// upload, not a malformed form.
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				metrics.observe(reasonTooLarge, 0)
				writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: reasonTooLarge})
				return
			}
			metrics.observe(reasonBadRequest, 0)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: reasonBadRequest})
			return
		}
		if file == nil {
			metrics.observe(reasonNoFile, 0)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: reasonNoFile})
			return
		}

		asset, err := pipe.Process(r.Context(), upload.Request{
			Filename: file.Filename,
			Content:  file.Content,
		})
		if err != nil {
			status, reason := rejection(err)
			if upload.IsClientError(err) {
				log.InfoContext(r.Context(), "upload rejected",
					slog.String("reason", reason),
					slog.String("filename", file.Filename),
				)
			} else {
				log.ErrorContext(r.Context(), "upload failed", logger.Error(err))
			}
			metrics.observe(reason, 0)
			writeJSON(w, status, ErrorResponse{Error: reason})
			return
		}

		metrics.observe("accepted", asset.Size)
		writeJSON(w, http.StatusCreated, UploadResponse{URL: asset.PublicURL})
	}
}
