package baseline

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// Info summarizes a JPEG stream's frame header without decoding any
// entropy-coded data.
type Info struct {
	Width         int
	Height        int
	Components    int
	BitsPerSample int
	IsGrayscale   bool
	IsColor       bool
	IsBaseline    bool
	IsProgressive bool

	// ColorTransform is the Adobe APP14 transform value, or -1 when the
	// stream carries no Adobe marker.
	ColorTransform int

	// RestartInterval is the DRI interval in MCUs, 0 when absent.
	RestartInterval int
}

// GetInfo walks the marker stream up to the first scan and reports the
// frame parameters.
func GetInfo(jpegData []byte) (*Info, error) {
	reader := common.NewReader(bytes.NewReader(jpegData))

	marker, err := reader.ReadMarker()
	if err != nil {
		return nil, err
	}
	if marker != common.MarkerSOI {
		return nil, common.ErrInvalidSOI
	}

	info := &Info{ColorTransform: -1}
	sofSeen := false

	for {
		marker, err := reader.ReadMarker()
		if err != nil {
			return nil, err
		}

		switch {
		case common.IsSOF(marker):
			data, err := reader.ReadSegment()
			if err != nil {
				return nil, err
			}
			if len(data) < 6 {
				return nil, common.ErrInvalidSOF
			}

			info.BitsPerSample = int(data[0])
			info.Height = int(data[1])<<8 | int(data[2])
			info.Width = int(data[3])<<8 | int(data[4])
			info.Components = int(data[5])
			info.IsGrayscale = info.Components == 1
			info.IsColor = info.Components >= 3
			info.IsBaseline = marker == common.MarkerSOF0
			info.IsProgressive = marker == common.MarkerSOF2 || marker == common.MarkerSOF10
			sofSeen = true

		case marker == common.MarkerDRI:
			data, err := reader.ReadSegment()
			if err != nil {
				return nil, err
			}
			if len(data) != 2 {
				return nil, common.ErrInvalidData
			}
			info.RestartInterval = int(data[0])<<8 | int(data[1])

		case marker == common.MarkerAPP14:
			data, err := reader.ReadSegment()
			if err != nil {
				return nil, err
			}
			if len(data) >= 12 && bytes.Equal(data[:5], []byte("Adobe")) {
				info.ColorTransform = int(data[11])
			}

		case marker == common.MarkerSOS:
			if !sofSeen {
				return nil, fmt.Errorf("%w: SOS before SOF", common.ErrMalformedContainer)
			}
			return info, nil

		case marker == common.MarkerEOI:
			if !sofSeen {
				return nil, fmt.Errorf("%w: no frame header", common.ErrMalformedContainer)
			}
			return info, nil

		default:
			if common.HasLength(marker) {
				if _, err := reader.ReadSegment(); err != nil {
					return nil, err
				}
			}
		}
	}
}
