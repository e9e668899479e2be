package astisi

import "errors"

// Errors
var (
	// ErrMalformedLength is latched when a length field describes a region
	// crossing its enclosing scope or the end of the underlying buffer. It
	// corrupts the notion of where the next record starts, so the remainder of
	// the list is abandoned.
	ErrMalformedLength = errors.New("astisi: malformed length field")

	// ErrTruncatedPayload is latched when a read would cross the current scope
	// boundary. The read returns a zero value and the cursor goes sticky.
	ErrTruncatedPayload = errors.New("astisi: truncated payload")

	// ErrScopeDepthExceeded is latched when scopes nest deeper than
	// MaxScopeDepth, which bounds decoding of adversarial input.
	ErrScopeDepthExceeded = errors.New("astisi: scope depth exceeded")

	// ErrBufferFull is latched when a write runs past the end of the
	// destination region.
	ErrBufferFull = errors.New("astisi: write past end of buffer")

	// ErrEncodeOverflow is returned when an encoded payload does not fit in
	// its declared length field. Nothing is emitted for the record.
	ErrEncodeOverflow = errors.New("astisi: payload overflows length field")

	// ErrRegistryConflict is returned when two different codecs claim the same
	// identity or XML name. It indicates a build-time defect, not bad input.
	ErrRegistryConflict = errors.New("astisi: conflicting registration")

	// ErrXMLShapeMismatch is returned when a required attribute or child is
	// absent or has the wrong type.
	ErrXMLShapeMismatch = errors.New("astisi: XML shape mismatch")
)
