package docai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures. Inside a cascade every kind
// except UnsupportedMimeType is a soft failure: the cascade advances to
// the next provider instead of surfacing an error.
type ErrorKind string

const (
	KindProviderUnavailable   ErrorKind = "PROVIDER_UNAVAILABLE"
	KindProviderCallFailed    ErrorKind = "PROVIDER_CALL_FAILED"
	KindParseError            ErrorKind = "PARSE_ERROR"
	KindUnsupportedMimeType   ErrorKind = "UNSUPPORTED_MIME_TYPE"
	KindEmptyExtraction       ErrorKind = "EMPTY_EXTRACTION"
	KindUnsupportedExtraction ErrorKind = "UNSUPPORTED_EXTRACTION"
	KindStorageWriteFailed    ErrorKind = "STORAGE_WRITE_FAILED"
)

type kindError struct {
	kind ErrorKind
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.err)
}

func (e *kindError) Unwrap() error {
	return e.err
}

// WrapKind tags err with a pipeline error kind.
func WrapKind(kind ErrorKind, err error) error {
	return &kindError{kind: kind, err: err}
}

// Errorf is WrapKind over a formatted error.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &kindError{kind: kind, err: fmt.Errorf(format, args...)}
}

// KindOf extracts the error kind from err, defaulting to
// KindProviderCallFailed for untagged errors.
func KindOf(err error) ErrorKind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindProviderCallFailed
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ke *kindError
	return errors.As(err, &ke) && ke.kind == kind
}
