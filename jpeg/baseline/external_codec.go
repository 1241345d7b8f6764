package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ codec.Codec = (*BaselineCodec)(nil)

// BaselineCodec implements the JPEG Baseline (Process 1) codec
// Transfer Syntax UID: 1.2.840.10008.1.2.4.50
type BaselineCodec struct {
	transferSyntax *transfer.Syntax
	defaultQuality int
}

// NewBaselineCodec creates a new JPEG Baseline codec with the given
// default quality.
func NewBaselineCodec(quality int) *BaselineCodec {
	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}
	return &BaselineCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
		defaultQuality: quality,
	}
}

// Name returns the codec name
func (c *BaselineCodec) Name() string {
	return fmt.Sprintf("JPEG Baseline (Quality %d)", c.defaultQuality)
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *BaselineCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *BaselineCodec) GetDefaultParameters() codec.Parameters {
	return NewBaselineParameters().WithQuality(c.defaultQuality)
}

// Encode encodes pixel data to JPEG Baseline format
func (c *BaselineCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	if frameInfo.BitsStored > 8 {
		return fmt.Errorf("JPEG Baseline supports 8-bit samples, got %d bits stored", frameInfo.BitsStored)
	}

	baselineParams := c.resolveParameters(parameters)
	if err := baselineParams.Validate(); err != nil {
		return err
	}

	width := int(frameInfo.Width)
	height := int(frameInfo.Height)
	samples := int(frameInfo.SamplesPerPixel)

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		var encoded []byte
		switch samples {
		case 1:
			encoded, err = EncodeGrayscale(frameData, width, height, baselineParams.Quality)
		case 3:
			encoded, err = Encode(frameData, width, height, baselineParams.Quality, baselineParams.Subsampling)
		default:
			return fmt.Errorf("JPEG Baseline supports 1 or 3 samples per pixel, got %d", samples)
		}
		if err != nil {
			return fmt.Errorf("JPEG Baseline encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// Decode decodes JPEG Baseline data to uncompressed pixel data
func (c *BaselineCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}

		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		// Keep the stream's native component count so grayscale frames
		// stay single-channel for MONOCHROME handling downstream.
		decoded, _, _, _, err := DecodeComponents(frameData)
		if err != nil {
			return fmt.Errorf("JPEG Baseline decode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(decoded); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}

	return nil
}

// resolveParameters derives typed parameters from whatever the caller
// passed, falling back to the codec defaults.
func (c *BaselineCodec) resolveParameters(parameters codec.Parameters) *JPEGBaselineParameters {
	if parameters == nil {
		return NewBaselineParameters().WithQuality(c.defaultQuality)
	}
	if bp, ok := parameters.(*JPEGBaselineParameters); ok {
		return bp
	}

	bp := NewBaselineParameters().WithQuality(c.defaultQuality)
	if q := parameters.GetParameter("quality"); q != nil {
		if qInt, ok := q.(int); ok && qInt >= 1 && qInt <= 100 {
			bp.Quality = qInt
		}
	}
	if s := parameters.GetParameter("subsampling"); s != nil {
		switch v := s.(type) {
		case Subsampling:
			bp.Subsampling = v
		case int:
			bp.Subsampling = Subsampling(v)
		}
	}
	return bp
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the global registry
func RegisterBaselineCodec(quality int) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewBaselineCodec(quality))
}

func init() {
	RegisterBaselineCodec(defaultQuality)
}
