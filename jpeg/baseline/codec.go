package baseline

import (
	"github.com/cocosip/go-jpeg-codec/codec"
	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// registryCodec implements the codec.Codec interface for JPEG Baseline
type registryCodec struct{}

// NewRegistryCodec creates a JPEG Baseline codec for the internal registry
func NewRegistryCodec() codec.Codec {
	return &registryCodec{}
}

// Encode encodes pixel data using JPEG Baseline
func (c *registryCodec) Encode(params codec.EncodeParams) ([]byte, error) {
	quality := defaultQuality
	subsampling := Subsample420
	if params.Options != nil {
		if opts, ok := params.Options.(*Options); ok {
			if err := opts.Validate(); err != nil {
				return nil, err
			}
			if opts.Quality > 0 {
				quality = opts.Quality
			}
			switch opts.Subsampling {
			case "444":
				subsampling = Subsample444
			case "422":
				subsampling = Subsample422
			}
		}
	}

	switch params.Components {
	case 1:
		return EncodeGrayscale(params.PixelData, params.Width, params.Height, quality)
	case 3:
		return Encode(params.PixelData, params.Width, params.Height, quality, subsampling)
	case 4:
		return EncodeCMYK(params.PixelData, params.Width, params.Height, quality)
	default:
		return nil, common.ErrInvalidComponents
	}
}

// Decode decodes JPEG Baseline data
func (c *registryCodec) Decode(data []byte) (*codec.DecodeResult, error) {
	pixelData, width, height, components, err := DecodeComponents(data)
	if err != nil {
		return nil, err
	}

	return &codec.DecodeResult{
		PixelData:  pixelData,
		Width:      width,
		Height:     height,
		Components: components,
		BitDepth:   8, // Baseline is always 8-bit
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for JPEG Baseline
func (c *registryCodec) UID() string {
	return "1.2.840.10008.1.2.4.50"
}

// Name returns the human-readable name
func (c *registryCodec) Name() string {
	return "jpeg-baseline"
}

// Options contains encoding options for JPEG Baseline
type Options struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *Options) Validate() error {
	// Quality and subsampling are validated in BaseOptions
	return o.BaseOptions.Validate()
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewRegistryCodec())
}
