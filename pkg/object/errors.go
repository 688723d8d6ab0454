package object

import "errors"

// Resolution errors.
var (
	// ErrNotFound means no stored object matches the given id or prefix.
	ErrNotFound = errors.New("object not found")
	// ErrAmbiguous means a prefix matches more than one stored object.
	ErrAmbiguous = errors.New("ambiguous object prefix")
)

// Decode errors.
var (
	ErrMalformedHeader       = errors.New("malformed object header")
	ErrTruncatedBody         = errors.New("truncated object body")
	ErrTruncatedEntry        = errors.New("truncated tree entry")
	ErrInvalidEncoding       = errors.New("content is not valid UTF-8 text")
	ErrMissingSeparator      = errors.New("missing header/message separator")
	ErrUnsupportedObjectKind = errors.New("unsupported object kind")
)
