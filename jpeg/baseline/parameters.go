package baseline

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// Ensure JPEGBaselineParameters implements codec.Parameters
var _ codec.Parameters = (*JPEGBaselineParameters)(nil)

// JPEGBaselineParameters contains parameters for JPEG baseline compression.
type JPEGBaselineParameters struct {
	// Quality is the compression quality (1-100, higher = better quality).
	// Default: 90.
	Quality int

	// Subsampling selects the chroma subsampling mode for color input.
	// Default: Subsample420.
	Subsampling Subsampling

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

const defaultQuality = 90

// NewBaselineParameters creates a new JPEGBaselineParameters with default values.
func NewBaselineParameters() *JPEGBaselineParameters {
	return &JPEGBaselineParameters{
		Quality:     defaultQuality,
		Subsampling: Subsample420,
		params:      make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters).
func (p *JPEGBaselineParameters) GetParameter(name string) interface{} {
	switch name {
	case "quality":
		return p.Quality
	case "subsampling":
		return p.Subsampling
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters).
func (p *JPEGBaselineParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "quality":
		if v, ok := value.(int); ok {
			p.Quality = v
		}
	case "subsampling":
		switch v := value.(type) {
		case Subsampling:
			p.Subsampling = v
		case int:
			p.Subsampling = Subsampling(v)
		}
	default:
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid and normalizes values.
func (p *JPEGBaselineParameters) Validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		return common.ErrInvalidQuality
	}
	if !p.Subsampling.valid() {
		return common.ErrInvalidSubsampling
	}
	return nil
}

// WithQuality sets the quality and returns the parameters for chaining.
func (p *JPEGBaselineParameters) WithQuality(quality int) *JPEGBaselineParameters {
	p.Quality = quality
	return p
}

// WithSubsampling sets the chroma subsampling mode and returns the parameters for chaining.
func (p *JPEGBaselineParameters) WithSubsampling(s Subsampling) *JPEGBaselineParameters {
	p.Subsampling = s
	return p
}
