package binder

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/textproto"
	"path/filepath"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// FileUpload represents an uploaded file with its metadata and content.
type FileUpload struct {
	// Filename is the original filename provided by the client
	Filename string

	// Size is the size of the file in bytes
	Size int64

	// Header contains the MIME header fields for this file part
	Header textproto.MIMEHeader

	// Content holds the file data in memory
	Content []byte
}

// DeclaredContentType returns the MIME type the client claims for the
// uploaded file, from the part header or the filename extension. It is
// advisory only; the upload pipeline never trusts it and sniffs the
// real type from the content.
func (f *FileUpload) DeclaredContentType() string {
	if ct := f.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		return mediaType
	}
	return mime.TypeByExtension(filepath.Ext(f.Filename))
}

// GetFile retrieves a single file from a multipart form request.
// If multiple files are uploaded with the same field name, only the first is returned.
// Returns nil, nil if no file is found for the given field.
func GetFile(r *http.Request, field string) (*FileUpload, error) {
	return GetFileWithLimit(r, field, DefaultMaxMemory)
}

// GetFileWithLimit retrieves a single file with a custom memory limit
// for multipart parsing. Use it when the configured upload ceiling is
// above the default 10MB.
func GetFileWithLimit(r *http.Request, field string, maxMemory int64) (*FileUpload, error) {
	if err := parseMultipartForm(r, maxMemory); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidForm, field, err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file %q: %v", ErrInvalidForm, header.Filename, err)
	}

	return &FileUpload{
		Filename: header.Filename,
		Size:     int64(len(content)),
		Header:   header.Header,
		Content:  content,
	}, nil
}

// FileHeader contains metadata about an uploaded file.
type FileHeader struct {
	Filename string
	Size     int64
	Header   textproto.MIMEHeader
}

// StreamFile processes an uploaded file without loading it entirely
// into memory. The handler receives an io.Reader for the file content
// and the file header; the file is closed after the handler returns.
func StreamFile(r *http.Request, field string, handler func(io.Reader, *FileHeader) error) error {
	if err := parseMultipartForm(r, DefaultMaxMemory); err != nil {
		return err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidForm, field, err)
	}
	defer func() { _ = file.Close() }()

	return handler(file, &FileHeader{
		Filename: header.Filename,
		Size:     header.Size,
		Header:   header.Header,
	})
}

// parseMultipartForm ensures the multipart form is parsed with the given
// memory limit. The parse error is wrapped, not flattened, so callers can
// still recognize http.MaxBytesError when a body cap cut the request off.
func parseMultipartForm(r *http.Request, maxMemory int64) error {
	if r.MultipartForm != nil {
		return nil
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	return nil
}
