package process

import "strings"

// DefaultMimeType is assumed when a request declares no content type.
const DefaultMimeType = "application/pdf"

// Types the Document AI processors accept for synchronous processing.
var supportedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/png":       {},
	"image/jpeg":      {},
	"image/tiff":      {},
	"image/gif":       {},
	"image/bmp":       {},
	"image/webp":      {},
}

// SupportedMimeType reports whether the processors accept the given type.
// Parameters after the media type (e.g. charset) are ignored.
func SupportedMimeType(mimeType string) bool {
	media := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(media, ";"); idx >= 0 {
		media = strings.TrimSpace(media[:idx])
	}
	_, ok := supportedMimeTypes[media]
	return ok
}
