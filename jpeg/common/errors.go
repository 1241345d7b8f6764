package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the codec. Specific failures wrap one of these
// five, so callers can match with errors.Is on either the kind or the
// specific sentinel.
var (
	ErrUnsupportedMode    = errors.New("unsupported JPEG mode")
	ErrMalformedContainer = errors.New("malformed JPEG container")
	ErrInvalidHuffmanCode = errors.New("invalid Huffman code")
	ErrTruncatedStream    = errors.New("truncated JPEG stream")
	ErrInvalidParameter   = errors.New("invalid parameter")
)

// Container-level failures.
var (
	ErrInvalidMarker = fmt.Errorf("%w: invalid marker", ErrMalformedContainer)
	ErrInvalidSOI    = fmt.Errorf("%w: missing SOI marker", ErrMalformedContainer)
	ErrInvalidSOF    = fmt.Errorf("%w: invalid Start of Frame", ErrMalformedContainer)
	ErrInvalidDHT    = fmt.Errorf("%w: invalid Huffman table segment", ErrMalformedContainer)
	ErrInvalidDQT    = fmt.Errorf("%w: invalid quantization table segment", ErrMalformedContainer)
	ErrInvalidSOS    = fmt.Errorf("%w: invalid Start of Scan", ErrMalformedContainer)
	ErrInvalidData   = fmt.Errorf("%w: invalid entropy-coded data", ErrMalformedContainer)
)

// Parameter validation failures.
var (
	ErrInvalidDimensions  = fmt.Errorf("%w: invalid image dimensions", ErrInvalidParameter)
	ErrInvalidComponents  = fmt.Errorf("%w: invalid number of components", ErrInvalidParameter)
	ErrInvalidQuality     = fmt.Errorf("%w: quality must be 1-100", ErrInvalidParameter)
	ErrInvalidSubsampling = fmt.Errorf("%w: unsupported subsampling ratio", ErrInvalidParameter)
	ErrBufferTooSmall     = fmt.Errorf("%w: pixel buffer too small", ErrInvalidParameter)
)
