package upload

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// acceptableMIMEs maps an allowed extension to the content types its
// bytes may legitimately sniff as. Extensions without an entry pass on
// the extension check alone.
//
// zip accepts application/octet-stream because zip-based container
// formats (docx, jar, apk) are ambiguous at the byte-sniffing level.
var acceptableMIMEs = map[string][]string{
	"png": {"image/png"},
	"zip": {"application/zip", "application/x-zip-compressed", "application/octet-stream"},
}

// sniffLen is how much of the file content type detection looks at.
const sniffLen = 512

// Validator decides whether an upload's declared name and actual bytes
// are admissible. It is a pure inspection with no side effects.
type Validator struct {
	allowed map[string]struct{}
	caps    Capabilities
}

// NewValidator builds a validator for the given extension allow-list.
// Extensions are normalized to lower case without dots.
func NewValidator(extensions []string, caps Capabilities) *Validator {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return &Validator{allowed: allowed, caps: caps}
}

// Validate checks the declared filename and the buffered content and
// returns the accepted extension. Gates short-circuit: the first
// failure wins.
//
// The extension comes from the declared filename; the content type
// comes from the bytes alone. The client-supplied Content-Type header
// plays no part.
func (v *Validator) Validate(declaredFilename string, content []byte) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(declaredFilename), "."))
	if _, ok := v.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrDisallowedExtension, ext)
	}

	if !v.caps.ContentSniffing {
		// Degraded-security mode: the extension check alone stands.
		return ext, nil
	}

	acceptable, ok := acceptableMIMEs[ext]
	if !ok {
		return ext, nil
	}

	sniffed := sniffContentType(content)
	if !slices.Contains(acceptable, sniffed) {
		return "", fmt.Errorf("%w: declared %q, detected %q", ErrContentMismatch, ext, sniffed)
	}

	return ext, nil
}

// sniffContentType detects the true media type from the first 512
// bytes of content, stripping any parameters DetectContentType adds
// (e.g. "text/plain; charset=utf-8").
func sniffContentType(content []byte) string {
	if len(content) > sniffLen {
		content = content[:sniffLen]
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(content))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}
