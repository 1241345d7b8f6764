package baseline

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// Component is one color component during decoding.
type Component struct {
	ID byte // component identifier from the frame header
	H  int  // horizontal sampling factor
	V  int  // vertical sampling factor
	Tq int  // quantization table selector

	blocksW int    // component width in blocks (MCU padded)
	blocksH int    // component height in blocks (MCU padded)
	td      int    // DC Huffman table selector
	ta      int    // AC Huffman table selector
	dcPred  int32  // running DC predictor
	data    []byte // reconstructed samples, 64 per block, block-major
}

// decoder holds the parsed tables and per-component state for one image.
type decoder struct {
	width, height  int
	components     []*Component
	qtables        [4][64]int32
	qtableSeen     [4]bool
	dcTables       [4]*common.HuffmanTable
	acTables       [4]*common.HuffmanTable
	maxH, maxV     int
	mcusX, mcusY   int
	restartInt     int
	adobeTransform int // -1 when no Adobe APP14 marker was seen
	isRGB          bool
}

// DecodeComponents decodes a baseline sequential JPEG stream into
// interleaved samples with the stream's native component count: 1 for
// grayscale, 3 for YCbCr/RGB, 4 for CMYK/YCCK (converted to plain CMYK).
func DecodeComponents(jpegData []byte) (pixelData []byte, width, height, components int, err error) {
	d := &decoder{adobeTransform: -1}
	reader := common.NewReader(bytes.NewReader(jpegData))

	marker, err := reader.ReadMarker()
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if marker != common.MarkerSOI {
		return nil, 0, 0, 0, common.ErrInvalidSOI
	}

	for {
		marker, err := reader.ReadMarker()
		if err != nil {
			return nil, 0, 0, 0, err
		}

		switch {
		case marker == common.MarkerSOF0:
			if err := d.parseSOF(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerSOF2:
			return nil, 0, 0, 0, fmt.Errorf("%w: progressive DCT", common.ErrUnsupportedMode)

		case common.IsArithmeticSOF(marker):
			return nil, 0, 0, 0, fmt.Errorf("%w: arithmetic entropy coding", common.ErrUnsupportedMode)

		case common.IsSOF(marker):
			return nil, 0, 0, 0, fmt.Errorf("%w: non-baseline frame marker 0x%04X", common.ErrUnsupportedMode, marker)

		case marker == common.MarkerDQT:
			if err := d.parseDQT(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerDHT:
			if err := d.parseDHT(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerDRI:
			if err := d.parseDRI(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerAPP14:
			if err := d.parseAPP14(reader); err != nil {
				return nil, 0, 0, 0, err
			}

		case marker == common.MarkerSOS:
			if err := d.parseSOS(reader); err != nil {
				return nil, 0, 0, 0, err
			}
			if err := d.decodeScan(reader); err != nil {
				return nil, 0, 0, 0, err
			}
			// Baseline sequential carries a single interleaved scan.
			pixelData = d.assemblePixels()
			return pixelData, d.width, d.height, len(d.components), nil

		case marker == common.MarkerEOI:
			return nil, 0, 0, 0, fmt.Errorf("%w: EOI before scan data", common.ErrMalformedContainer)

		default:
			if common.HasLength(marker) {
				if _, err := reader.ReadSegment(); err != nil {
					return nil, 0, 0, 0, err
				}
			}
		}
	}
}

// Decode decodes a baseline sequential JPEG stream to interleaved RGB,
// 3 bytes per pixel regardless of the stream's component count: grayscale
// is replicated across the channels and CMYK is composited down to RGB.
func Decode(jpegData []byte) (rgb []byte, width, height int, err error) {
	pixels, w, h, ncomp, err := DecodeComponents(jpegData)
	if err != nil {
		return nil, 0, 0, err
	}

	switch ncomp {
	case 3:
		return pixels, w, h, nil
	case 1:
		out := make([]byte, w*h*3)
		for i, v := range pixels {
			out[i*3+0] = v
			out[i*3+1] = v
			out[i*3+2] = v
		}
		return out, w, h, nil
	case 4:
		out := make([]byte, w*h*3)
		for i := 0; i < w*h; i++ {
			c, m, y, k := pixels[i*4], pixels[i*4+1], pixels[i*4+2], pixels[i*4+3]
			w16 := 255 - int(k)
			out[i*3+0] = byte((255 - int(c)) * w16 / 255)
			out[i*3+1] = byte((255 - int(m)) * w16 / 255)
			out[i*3+2] = byte((255 - int(y)) * w16 / 255)
		}
		return out, w, h, nil
	default:
		return nil, 0, 0, common.ErrInvalidComponents
	}
}

// parseSOF parses the baseline frame header.
func (d *decoder) parseSOF(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	if len(data) < 6 {
		return common.ErrInvalidSOF
	}

	if data[0] != 8 {
		return fmt.Errorf("%w: %d-bit precision", common.ErrUnsupportedMode, data[0])
	}

	d.height = int(data[1])<<8 | int(data[2])
	d.width = int(data[3])<<8 | int(data[4])
	numComponents := int(data[5])

	if d.width <= 0 || d.height <= 0 {
		return common.ErrInvalidSOF
	}
	if numComponents != 1 && numComponents != 3 && numComponents != 4 {
		return fmt.Errorf("%w: %d components", common.ErrUnsupportedMode, numComponents)
	}
	if len(data) < 6+numComponents*3 {
		return common.ErrInvalidSOF
	}

	d.maxH, d.maxV = 1, 1
	d.components = make([]*Component, numComponents)

	for i := 0; i < numComponents; i++ {
		offset := 6 + i*3
		comp := &Component{
			ID: data[offset],
			H:  int(data[offset+1] >> 4),
			V:  int(data[offset+1] & 0x0F),
			Tq: int(data[offset+2]),
		}

		if comp.H < 1 || comp.H > 4 || comp.V < 1 || comp.V > 4 || comp.Tq > 3 {
			return common.ErrInvalidSOF
		}

		if comp.H > d.maxH {
			d.maxH = comp.H
		}
		if comp.V > d.maxV {
			d.maxV = comp.V
		}

		d.components[i] = comp
	}

	// Component IDs 'R','G','B' mark an RGB stream even without APP14.
	if numComponents == 3 &&
		d.components[0].ID == 'R' && d.components[1].ID == 'G' && d.components[2].ID == 'B' {
		d.isRGB = true
	}

	d.mcusX = common.DivCeil(d.width, 8*d.maxH)
	d.mcusY = common.DivCeil(d.height, 8*d.maxV)

	for _, comp := range d.components {
		comp.blocksW = d.mcusX * comp.H
		comp.blocksH = d.mcusY * comp.V
		comp.data = make([]byte, comp.blocksW*comp.blocksH*64)
	}

	return nil
}

// parseDQT parses Define Quantization Table segments. Entries arrive in
// zigzag order and are stored in natural order.
func (d *decoder) parseDQT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		pq := data[offset] >> 4
		tq := data[offset] & 0x0F
		if tq > 3 || pq > 1 {
			return common.ErrInvalidDQT
		}
		offset++

		if pq == 0 {
			if offset+64 > len(data) {
				return common.ErrInvalidDQT
			}
			for i := 0; i < 64; i++ {
				d.qtables[tq][common.ZigZag[i]] = int32(data[offset+i])
			}
			offset += 64
		} else {
			// 16-bit tables are legal in the container but not in a
			// baseline frame; parse them anyway so GetInfo-style walks
			// do not choke, the SOF precision check rejects the frame.
			if offset+128 > len(data) {
				return common.ErrInvalidDQT
			}
			for i := 0; i < 64; i++ {
				d.qtables[tq][common.ZigZag[i]] = int32(data[offset+i*2])<<8 | int32(data[offset+i*2+1])
			}
			offset += 128
		}
		d.qtableSeen[tq] = true
	}

	return nil
}

// parseDHT parses Define Huffman Table segments and builds the canonical
// tables.
func (d *decoder) parseDHT(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		tc := data[offset] >> 4
		th := data[offset] & 0x0F
		if tc > 1 || th > 3 {
			return common.ErrInvalidDHT
		}
		offset++

		if offset+16 > len(data) {
			return common.ErrInvalidDHT
		}

		table := &common.HuffmanTable{}
		totalCodes := 0
		for i := 0; i < 16; i++ {
			table.Bits[i] = int(data[offset+i])
			totalCodes += table.Bits[i]
		}
		offset += 16

		if offset+totalCodes > len(data) {
			return common.ErrInvalidDHT
		}
		table.Values = make([]byte, totalCodes)
		copy(table.Values, data[offset:offset+totalCodes])
		offset += totalCodes

		if err := table.Build(); err != nil {
			return err
		}

		if tc == 0 {
			d.dcTables[th] = table
		} else {
			d.acTables[th] = table
		}
	}

	return nil
}

// parseDRI parses the restart interval.
func (d *decoder) parseDRI(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}
	if len(data) != 2 {
		return common.ErrInvalidData
	}
	d.restartInt = int(data[0])<<8 | int(data[1])
	return nil
}

// parseAPP14 records the Adobe color transform when the segment carries
// the Adobe signature; anything else under APP14 is skipped.
func (d *decoder) parseAPP14(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}
	if len(data) >= 12 && bytes.Equal(data[:5], []byte("Adobe")) {
		d.adobeTransform = int(data[11])
	}
	return nil
}

// parseSOS parses the scan header and binds table selectors to
// components.
func (d *decoder) parseSOS(reader *common.Reader) error {
	data, err := reader.ReadSegment()
	if err != nil {
		return err
	}

	if len(d.components) == 0 {
		return fmt.Errorf("%w: SOS before SOF", common.ErrMalformedContainer)
	}
	if len(data) < 1 {
		return common.ErrInvalidSOS
	}

	ns := int(data[0])
	if ns != len(d.components) || len(data) < 1+ns*2+3 {
		return common.ErrInvalidSOS
	}

	for i := 0; i < ns; i++ {
		cs := data[1+i*2]
		tdTa := data[2+i*2]

		var comp *Component
		for _, c := range d.components {
			if c.ID == cs {
				comp = c
				break
			}
		}
		if comp == nil {
			return common.ErrInvalidSOS
		}

		comp.td = int(tdTa >> 4)
		comp.ta = int(tdTa & 0x0F)
		if comp.td > 3 || comp.ta > 3 {
			return common.ErrInvalidSOS
		}
	}

	for _, comp := range d.components {
		if !d.qtableSeen[comp.Tq] {
			return common.ErrInvalidDQT
		}
		if d.dcTables[comp.td] == nil || d.acTables[comp.ta] == nil {
			return common.ErrInvalidDHT
		}
	}

	return nil
}

// decodeScan reads the entropy-coded data and walks the MCU grid in the
// same raster order the encoder wrote it, honoring restart intervals.
func (d *decoder) decodeScan(reader *common.Reader) error {
	scanData, err := readScanData(reader)
	if err != nil {
		return err
	}

	br := common.NewBitReader(scanData)
	mcu := 0

	for my := 0; my < d.mcusY; my++ {
		for mx := 0; mx < d.mcusX; mx++ {
			if d.restartInt > 0 && mcu > 0 && mcu%d.restartInt == 0 {
				m := br.Restart()
				if !common.IsRST(m) {
					return fmt.Errorf("%w: missing restart marker", common.ErrMalformedContainer)
				}
				for _, comp := range d.components {
					comp.dcPred = 0
				}
			}

			for _, comp := range d.components {
				for v := 0; v < comp.V; v++ {
					for h := 0; h < comp.H; h++ {
						if err := d.decodeBlock(br, comp, mx*comp.H+h, my*comp.V+v); err != nil {
							return err
						}
					}
				}
			}
			mcu++
		}
	}

	return nil
}

// readScanData collects the raw entropy-coded bytes, stuffed bytes and
// restart markers included, up to the next structural marker.
func readScanData(reader *common.Reader) ([]byte, error) {
	var scan bytes.Buffer
	for {
		b, err := reader.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if b != 0xFF {
			scan.WriteByte(b)
			continue
		}

		b2, err := reader.ReadByte()
		if err == io.EOF {
			scan.WriteByte(b)
			break
		}
		if err != nil {
			return nil, err
		}

		marker := uint16(0xFF00) | uint16(b2)
		if b2 == 0x00 || common.IsRST(marker) {
			// Stuffed data byte or restart marker, both belong to the
			// scan; the bit reader interprets them.
			scan.WriteByte(b)
			scan.WriteByte(b2)
			continue
		}

		// A structural marker ends the scan.
		break
	}
	return scan.Bytes(), nil
}

// decodeBlock reverses the coding of one 8x8 block: Huffman decode,
// dequantize, un-zigzag and inverse DCT into the component plane.
func (d *decoder) decodeBlock(br *common.BitReader, comp *Component, bx, by int) error {
	var zz [64]int32

	// DC coefficient.
	s, err := d.dcTables[comp.td].Decode(br)
	if err != nil {
		return mapScanError(err)
	}
	if s > 11 {
		return common.ErrInvalidData
	}

	diff, err := common.ReceiveExtend(br, int(s))
	if err != nil {
		return mapScanError(err)
	}

	comp.dcPred += int32(diff)
	zz[0] = comp.dcPred

	// AC coefficients.
	acTable := d.acTables[comp.ta]
	k := 1
	for k < 64 {
		rs, err := acTable.Decode(br)
		if err != nil {
			return mapScanError(err)
		}

		r := int(rs >> 4)
		size := int(rs & 0x0F)

		if size == 0 {
			if r == 15 {
				k += 16 // ZRL
				continue
			}
			break // EOB
		}

		k += r
		if k >= 64 {
			return common.ErrInvalidData
		}

		val, err := common.ReceiveExtend(br, size)
		if err != nil {
			return mapScanError(err)
		}
		zz[k] = int32(val)
		k++
	}

	levels := common.FromZigzag(&zz)

	var coef [64]float64
	common.Dequantize(&levels, &d.qtables[comp.Tq], &coef)
	common.InverseDCT(&coef)

	out := comp.data[(by*comp.blocksW+bx)*64:]
	for i := 0; i < 64; i++ {
		out[i] = byte(common.Clamp(int(coef[i]+128.5), 0, 255))
	}

	return nil
}

// mapScanError turns bit-reader exhaustion into the truncation error kind.
func mapScanError(err error) error {
	if errors.Is(err, io.EOF) {
		return common.ErrTruncatedStream
	}
	return err
}

// sampleAt reads the reconstructed sample of a component at full-image
// coordinates, scaling through the sampling factors. Subsampled planes
// upsample by replication.
func (d *decoder) sampleAt(comp *Component, x, y int) byte {
	sx := x * comp.H / d.maxH
	sy := y * comp.V / d.maxV

	bx := sx / 8
	by := sy / 8
	offset := (by*comp.blocksW+bx)*64 + (sy%8)*8 + (sx % 8)
	return comp.data[offset]
}

// assemblePixels interleaves the reconstructed planes into the output
// buffer, applying the color transform the stream calls for.
func (d *decoder) assemblePixels() []byte {
	n := len(d.components)
	out := make([]byte, d.width*d.height*n)

	switch n {
	case 1:
		comp := d.components[0]
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				out[y*d.width+x] = d.sampleAt(comp, x, y)
			}
		}

	case 3:
		// Adobe transform 0 means the three components are stored as
		// plain RGB without the YCbCr step.
		isRGB := d.isRGB || d.adobeTransform == common.AdobeTransformUnknown
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				c0 := d.sampleAt(d.components[0], x, y)
				c1 := d.sampleAt(d.components[1], x, y)
				c2 := d.sampleAt(d.components[2], x, y)

				offset := (y*d.width + x) * 3
				if isRGB {
					out[offset+0] = c0
					out[offset+1] = c1
					out[offset+2] = c2
				} else {
					out[offset+0], out[offset+1], out[offset+2] = common.YCbCrToRGB(c0, c1, c2)
				}
			}
		}

	case 4:
		ycck := d.adobeTransform == common.AdobeTransformYCCK
		for y := 0; y < d.height; y++ {
			for x := 0; x < d.width; x++ {
				c0 := d.sampleAt(d.components[0], x, y)
				c1 := d.sampleAt(d.components[1], x, y)
				c2 := d.sampleAt(d.components[2], x, y)
				c3 := d.sampleAt(d.components[3], x, y)

				offset := (y*d.width + x) * 4
				if ycck {
					// YCCK: the first three channels are YCbCr over
					// inverted CMY; K passes through untouched.
					r, g, b := common.YCbCrToRGB(c0, c1, c2)
					out[offset+0] = 255 - r
					out[offset+1] = 255 - g
					out[offset+2] = 255 - b
					out[offset+3] = c3
				} else {
					// Adobe CMYK is stored inverted.
					out[offset+0] = 255 - c0
					out[offset+1] = 255 - c1
					out[offset+2] = 255 - c2
					out[offset+3] = 255 - c3
				}
			}
		}
	}

	return out
}
