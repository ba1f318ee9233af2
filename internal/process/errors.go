package process

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedMime = errors.New("unsupported mime type")
	ErrUpstream        = errors.New("upstream processing failed")
	ErrUpstreamTimeout = errors.New("upstream processing timed out")
)

const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeUnsupportedMime = "unsupported_mime_type"
	ErrorCodeNotFound        = "object_not_found"
	ErrorCodeAccessDenied    = "access_denied"
	ErrorCodeUpstream        = "upstream_error"
	ErrorCodeUpstreamTimeout = "upstream_timeout"
	ErrorCodeInternal        = "internal_error"
)
