// Package errs defines the sentinel errors returned by the kfst core.
//
// Every documented failure mode in the decoders, encoders and the
// tokeniser is represented by exactly one sentinel here, so callers can
// use errors.Is against a stable value instead of matching strings.
package errs

import "errors"

// Decode-time errors (format.FormatError wraps one of these).
var (
	ErrBadMagic              = errors.New("kfst: bad magic number")
	ErrUnsupportedVersion    = errors.New("kfst: unsupported binary format version")
	ErrMalformedLine         = errors.New("kfst: malformed textual line")
	ErrMalformedField        = errors.New("kfst: malformed field")
	ErrSymbolIndexOutOfRange = errors.New("kfst: symbol index out of range")
	ErrTruncatedBinary       = errors.New("kfst: truncated binary stream")
	ErrCompressionFailure    = errors.New("kfst: compressed body could not be read")
)

// Encode-time capacity errors (format.CapacityError wraps one of these).
var (
	ErrTooManySymbols     = errors.New("kfst: too many symbols to encode")
	ErrTooManyTransitions = errors.New("kfst: too many transitions to encode")
	ErrTooManyFinalStates = errors.New("kfst: too many final states to encode")
)

// Query-time errors.
var (
	ErrTokenization = errors.New("kfst: input cannot be split into symbols")
)
