package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidQuality is returned when the quality parameter is out of range
	ErrInvalidQuality = fmt.Errorf("%w: quality must be 1-100", ErrInvalidParameter)
)
