package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filedrop/pkg/imgclean"
	"github.com/dmitrymomot/filedrop/pkg/logger"
	"github.com/dmitrymomot/filedrop/pkg/randname"
	"github.com/dmitrymomot/filedrop/storage"
)

// sanitizableFormats maps extensions that can carry hidden payloads to
// the image format the sanitizer re-encodes them as.
var sanitizableFormats = map[string]string{
	"png": "png",
}

// Request is one upload as received from the transport layer. It is
// owned by a single Process call and never retained afterwards.
type Request struct {
	// Filename is the client-declared name; only its extension is used.
	Filename string

	// Content is the fully buffered upload body.
	Content []byte
}

// StoredAsset describes a successfully admitted upload.
type StoredAsset struct {
	BaseID    string // 20 lowercase hex chars, unique across all extensions
	Extension string
	Name      string // BaseID + "." + Extension
	Size      int64  // bytes persisted (differs from input for sanitized images)
	PublicURL string
	Sanitized bool
}

// Pipeline is the upload admission state machine: size check, format
// validation, name allocation, sanitize-or-store, URL construction.
// It is immutable after construction and safe for concurrent use; each
// Process call is an independent single-pass run.
type Pipeline struct {
	cfg       Config
	store     storage.Storage
	validator *Validator
	log       *slog.Logger
}

// NewPipeline wires the pipeline from its explicit collaborators.
// Disabled capabilities are logged once here so operators see the
// widened security gap at startup rather than per request.
func NewPipeline(cfg Config, store storage.Storage, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("upload"))

	for _, advisory := range cfg.Advisories() {
		log.Warn("running with degraded capability", slog.String("advisory", advisory))
	}

	return &Pipeline{
		cfg:       cfg,
		store:     store,
		validator: NewValidator(cfg.AllowedExtensions, cfg.Capabilities),
		log:       log,
	}
}

// Capabilities exposes the pipeline's capability descriptor for the
// health surface.
func (p *Pipeline) Capabilities() Capabilities {
	return p.cfg.Capabilities
}

// Process runs one upload through the admission pipeline. The returned
// error is either a client rejection (see IsClientError) or a server
// failure; no partial state is ever left in storage.
func (p *Pipeline) Process(ctx context.Context, req Request) (*StoredAsset, error) {
	if len(req.Content) == 0 {
		return nil, ErrNoFileProvided
	}

	// A zero limit rejects every non-empty upload. That fails closed
	// when a malformed MAX_UPLOAD_SIZE degrades to 0, making the
	// misconfiguration visible instead of lifting the ceiling.
	size := int64(len(req.Content))
	if size > p.cfg.MaxUploadSize.Bytes() {
		return nil, fmt.Errorf("%w: %d bytes, limit %s", ErrTooLarge, size, p.cfg.MaxUploadSize)
	}

	ext, err := p.validator.Validate(req.Filename, req.Content)
	if err != nil {
		return nil, err
	}

	baseID, err := randname.Allocate(ctx, p.store)
	if err != nil {
		return nil, err
	}

	name := baseID + "." + ext

	body := bytes.NewReader(req.Content)
	sanitized := false
	if format, wants := sanitizableFormats[ext]; wants && p.cfg.ImageSanitizing {
		var clean bytes.Buffer
		if err := imgclean.Reencode(body, &clean, format); err != nil {
			// The content passed MIME sniffing but does not decode;
			// treating it as infrastructure failure keeps malformed
			// inner structure from reaching storage unsanitized.
			return nil, fmt.Errorf("%w: %v", ErrSanitizeFailed, err)
		}
		body = bytes.NewReader(clean.Bytes())
		sanitized = true
	}

	written, err := p.store.Create(ctx, name, body)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Lost the allocation race despite 80 bits of entropy;
			// exclusive create kept the other asset intact.
			p.log.ErrorContext(ctx, "allocated name collided at write time", slog.String("name", name))
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	asset := &StoredAsset{
		BaseID:    baseID,
		Extension: ext,
		Name:      name,
		Size:      written,
		PublicURL: p.store.URL(name),
		Sanitized: sanitized,
	}

	p.log.InfoContext(ctx, "upload stored",
		slog.String("name", name),
		slog.Int64("size", written),
		slog.Bool("sanitized", sanitized),
	)

	return asset, nil
}
