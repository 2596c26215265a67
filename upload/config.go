package upload

import (
	"github.com/dmitrymomot/filedrop/pkg/bytesize"
)

// Capabilities describes the optional security stages available to the
// pipeline. Both default to on; switching one off is an operational
// decision that widens the accepted security gap, so it is surfaced as
// a process-level advisory rather than a per-request error.
type Capabilities struct {
	// ContentSniffing enables detecting the true MIME type from the
	// upload's bytes instead of trusting the declared filename.
	ContentSniffing bool `env:"CONTENT_SNIFFING" envDefault:"true"`

	// ImageSanitizing enables the decode/re-encode round trip that
	// strips hidden payloads from raster images. When disabled, image
	// uploads are stored raw.
	ImageSanitizing bool `env:"IMAGE_SANITIZING" envDefault:"true"`
}

// Advisories returns operator-facing tags for every disabled
// capability, for startup logs and the health endpoint.
func (c Capabilities) Advisories() []string {
	var out []string
	if !c.ContentSniffing {
		out = append(out, "content_sniffing_disabled")
	}
	if !c.ImageSanitizing {
		out = append(out, "image_sanitizing_disabled")
	}
	return out
}

// Config is the pipeline's immutable configuration, read once at
// startup and passed into NewPipeline.
type Config struct {
	// AllowedExtensions is the closed set of accepted extensions,
	// lower-case without dots.
	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS" envDefault:"png,zip"`

	// MaxUploadSize is the authoritative server-side size ceiling,
	// in ini-style syntax ("8M"). Zero rejects every non-empty upload.
	MaxUploadSize bytesize.Size `env:"MAX_UPLOAD_SIZE" envDefault:"8M"`

	Capabilities
}
