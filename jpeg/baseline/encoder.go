package baseline

import (
	"bytes"

	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// encComponent is one color component during encoding.
type encComponent struct {
	id     byte
	h, v   int // sampling factors
	tq     int // quantization table index (0 luminance, 1 chrominance)
	th     int // Huffman table pair index (0 luminance, 1 chrominance)
	plane  []byte
	stride int
	dcPred int32
}

// encoder drives one image through the pipeline: sample planes in MCU
// order through DCT, quantization, zigzag and Huffman coding, framed by
// the marker segments.
type encoder struct {
	width, height  int
	quality        int
	adobeTransform int // APP14 transform value, -1 to omit the marker
	components     []*encComponent
	maxH, maxV     int
	mcusX, mcusY   int

	qtables  [2][64]int32
	dcTables [2]*common.HuffmanTable
	acTables [2]*common.HuffmanTable
}

// Encode encodes interleaved RGB pixels (3 bytes per pixel) to a baseline
// sequential JPEG stream at the given quality (1-100) and chroma
// subsampling ratio.
func Encode(pixelData []byte, width, height, quality int, subsampling Subsampling) ([]byte, error) {
	if err := validateParams(pixelData, width, height, quality, 3); err != nil {
		return nil, err
	}
	if !subsampling.valid() {
		return nil, common.ErrInvalidSubsampling
	}

	enc := newEncoder(width, height, quality, -1)
	enc.setupColor(subsampling)
	enc.buildRGBPlanes(pixelData)

	return enc.encode()
}

// EncodeGrayscale encodes single-channel samples (1 byte per pixel) to a
// baseline sequential JPEG stream.
func EncodeGrayscale(pixelData []byte, width, height, quality int) ([]byte, error) {
	if err := validateParams(pixelData, width, height, quality, 1); err != nil {
		return nil, err
	}

	enc := newEncoder(width, height, quality, -1)
	enc.components = []*encComponent{{id: 1, h: 1, v: 1, tq: 0, th: 0}}
	enc.finishLayout()
	enc.components[0].plane = enc.fillPlane(pixelData[:width*height], width, 1, 1, enc.components[0])

	return enc.encode()
}

// EncodeCMYK encodes interleaved CMYK pixels (4 bytes per pixel) to a
// 4-component Adobe stream. The components are stored inverted and the
// APP14 marker carries transform 0, the convention Adobe decoders expect.
func EncodeCMYK(pixelData []byte, width, height, quality int) ([]byte, error) {
	if err := validateParams(pixelData, width, height, quality, 4); err != nil {
		return nil, err
	}

	enc := newEncoder(width, height, quality, common.AdobeTransformUnknown)
	for i := 0; i < 4; i++ {
		enc.components = append(enc.components, &encComponent{id: byte(i + 1), h: 1, v: 1, tq: 0, th: 0})
	}
	enc.finishLayout()

	channel := make([]byte, width*height)
	for i, comp := range enc.components {
		for p := 0; p < width*height; p++ {
			channel[p] = 255 - pixelData[p*4+i]
		}
		comp.plane = enc.fillPlane(channel, width, 1, 1, comp)
	}

	return enc.encode()
}

func validateParams(pixelData []byte, width, height, quality, components int) error {
	if width <= 0 || height <= 0 {
		return common.ErrInvalidDimensions
	}
	if quality < 1 || quality > 100 {
		return common.ErrInvalidQuality
	}
	if len(pixelData) < width*height*components {
		return common.ErrBufferTooSmall
	}
	return nil
}

func newEncoder(width, height, quality, adobeTransform int) *encoder {
	return &encoder{
		width:          width,
		height:         height,
		quality:        quality,
		adobeTransform: adobeTransform,
	}
}

// setupColor lays out the three YCbCr components for the requested ratio.
func (e *encoder) setupColor(subsampling Subsampling) {
	h, v := subsampling.factors()
	e.components = []*encComponent{
		{id: 1, h: h, v: v, tq: 0, th: 0},
		{id: 2, h: 1, v: 1, tq: 1, th: 1},
		{id: 3, h: 1, v: 1, tq: 1, th: 1},
	}
	e.finishLayout()
}

// finishLayout derives the MCU grid from the component sampling factors.
func (e *encoder) finishLayout() {
	e.maxH, e.maxV = 1, 1
	for _, c := range e.components {
		if c.h > e.maxH {
			e.maxH = c.h
		}
		if c.v > e.maxV {
			e.maxV = c.v
		}
	}
	e.mcusX = common.DivCeil(e.width, 8*e.maxH)
	e.mcusY = common.DivCeil(e.height, 8*e.maxV)
}

// buildRGBPlanes converts the interleaved RGB input to full-resolution
// YCbCr planes, then downsamples chroma to each component's resolution.
func (e *encoder) buildRGBPlanes(rgb []byte) {
	n := e.width * e.height
	yPlane := make([]byte, n)
	cbPlane := make([]byte, n)
	crPlane := make([]byte, n)

	for i := 0; i < n; i++ {
		yPlane[i], cbPlane[i], crPlane[i] = common.RGBToYCbCr(rgb[i*3], rgb[i*3+1], rgb[i*3+2])
	}

	y, cb, cr := e.components[0], e.components[1], e.components[2]
	y.plane = e.fillPlane(yPlane, e.width, 1, 1, y)
	cb.plane = e.fillPlane(cbPlane, e.width, e.maxH/cb.h, e.maxV/cb.v, cb)
	cr.plane = e.fillPlane(crPlane, e.width, e.maxH/cr.h, e.maxV/cr.v, cr)
}

// fillPlane downsamples a full-resolution plane by box averaging with the
// given ratios and pads the result to the component's MCU-aligned plane
// size by edge replication.
func (e *encoder) fillPlane(src []byte, srcW, rx, ry int, c *encComponent) []byte {
	srcH := len(src) / srcW
	dstW := common.DivCeil(srcW, rx)
	dstH := common.DivCeil(srcH, ry)

	c.stride = e.mcusX * c.h * 8
	rows := e.mcusY * c.v * 8
	plane := make([]byte, c.stride*rows)

	for cy := 0; cy < dstH; cy++ {
		for cx := 0; cx < dstW; cx++ {
			sum, cnt := 0, 0
			for dy := 0; dy < ry; dy++ {
				sy := cy*ry + dy
				if sy >= srcH {
					sy = srcH - 1
				}
				for dx := 0; dx < rx; dx++ {
					sx := cx*rx + dx
					if sx >= srcW {
						sx = srcW - 1
					}
					sum += int(src[sy*srcW+sx])
					cnt++
				}
			}
			plane[cy*c.stride+cx] = byte((sum + cnt/2) / cnt)
		}
	}

	// Replicate the rightmost column and bottom row into the padding so
	// block edges do not ring against arbitrary values.
	for cy := 0; cy < dstH; cy++ {
		row := cy * c.stride
		for cx := dstW; cx < c.stride; cx++ {
			plane[row+cx] = plane[row+dstW-1]
		}
	}
	for cy := dstH; cy < rows; cy++ {
		copy(plane[cy*c.stride:(cy+1)*c.stride], plane[(dstH-1)*c.stride:dstH*c.stride])
	}

	return plane
}

// encode runs table generation, marker framing and the entropy-coded scan.
func (e *encoder) encode() ([]byte, error) {
	e.qtables[0] = common.GenerateQuantTable(e.quality, true)
	e.dcTables[0] = common.BuildStandardHuffmanTable(common.StandardDCLuminanceBits, common.StandardDCLuminanceValues)
	e.acTables[0] = common.BuildStandardHuffmanTable(common.StandardACLuminanceBits, common.StandardACLuminanceValues)

	if e.usesChromaTables() {
		e.qtables[1] = common.GenerateQuantTable(e.quality, false)
		e.dcTables[1] = common.BuildStandardHuffmanTable(common.StandardDCChrominanceBits, common.StandardDCChrominanceValues)
		e.acTables[1] = common.BuildStandardHuffmanTable(common.StandardACChrominanceBits, common.StandardACChrominanceValues)
	}

	var buf bytes.Buffer
	writer := common.NewWriter(&buf)

	if err := writer.WriteMarker(common.MarkerSOI); err != nil {
		return nil, err
	}
	if e.adobeTransform >= 0 {
		if err := e.writeAPP14(writer); err != nil {
			return nil, err
		}
	}
	if err := e.writeDQT(writer); err != nil {
		return nil, err
	}
	if err := e.writeSOF0(writer); err != nil {
		return nil, err
	}
	if err := e.writeDHT(writer); err != nil {
		return nil, err
	}
	if err := e.writeSOS(writer); err != nil {
		return nil, err
	}
	if err := writer.WriteMarker(common.MarkerEOI); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *encoder) usesChromaTables() bool {
	for _, c := range e.components {
		if c.tq == 1 || c.th == 1 {
			return true
		}
	}
	return false
}

// writeAPP14 writes the Adobe application marker that disambiguates the
// color transform of 3- and 4-component streams.
func (e *encoder) writeAPP14(writer *common.Writer) error {
	data := []byte{
		'A', 'd', 'o', 'b', 'e',
		0, 100, // DCTEncode version
		0, 0, // flags0
		0, 0, // flags1
		byte(e.adobeTransform),
	}
	return writer.WriteSegment(common.MarkerAPP14, data)
}

// writeDQT writes one Define Quantization Table segment per table in use,
// entries in zigzag order.
func (e *encoder) writeDQT(writer *common.Writer) error {
	numTables := 1
	if e.usesChromaTables() {
		numTables = 2
	}

	for i := 0; i < numTables; i++ {
		data := make([]byte, 1+64)
		data[0] = byte(i) // precision 0 (8-bit) | table id
		for j := 0; j < 64; j++ {
			data[1+j] = byte(e.qtables[i][common.ZigZag[j]])
		}
		if err := writer.WriteSegment(common.MarkerDQT, data); err != nil {
			return err
		}
	}

	return nil
}

// writeSOF0 writes the baseline frame header.
func (e *encoder) writeSOF0(writer *common.Writer) error {
	data := make([]byte, 6+len(e.components)*3)

	data[0] = 8 // sample precision
	data[1] = byte(e.height >> 8)
	data[2] = byte(e.height)
	data[3] = byte(e.width >> 8)
	data[4] = byte(e.width)
	data[5] = byte(len(e.components))

	for i, c := range e.components {
		data[6+i*3] = c.id
		data[7+i*3] = byte(c.h<<4 | c.v)
		data[8+i*3] = byte(c.tq)
	}

	return writer.WriteSegment(common.MarkerSOF0, data)
}

// writeDHT writes the Huffman table segments for the table pairs in use.
func (e *encoder) writeDHT(writer *common.Writer) error {
	if err := common.WriteHuffmanTable(writer, 0, 0, e.dcTables[0]); err != nil {
		return err
	}
	if err := common.WriteHuffmanTable(writer, 1, 0, e.acTables[0]); err != nil {
		return err
	}

	if e.usesChromaTables() {
		if err := common.WriteHuffmanTable(writer, 0, 1, e.dcTables[1]); err != nil {
			return err
		}
		if err := common.WriteHuffmanTable(writer, 1, 1, e.acTables[1]); err != nil {
			return err
		}
	}

	return nil
}

// writeSOS writes the scan header followed by the entropy-coded data.
func (e *encoder) writeSOS(writer *common.Writer) error {
	data := make([]byte, 1+len(e.components)*2+3)
	data[0] = byte(len(e.components))

	for i, c := range e.components {
		data[1+i*2] = c.id
		data[2+i*2] = byte(c.th<<4 | c.th)
	}

	data[1+len(e.components)*2] = 0  // spectral selection start
	data[2+len(e.components)*2] = 63 // spectral selection end
	data[3+len(e.components)*2] = 0  // successive approximation

	if err := writer.WriteSegment(common.MarkerSOS, data); err != nil {
		return err
	}

	var scanBuf bytes.Buffer
	bw := common.NewBitWriter(&scanBuf)

	if err := e.encodeScan(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	return writer.WriteBytes(scanBuf.Bytes())
}

// encodeScan walks the MCU grid in raster order, visiting each
// component's sampling-factor blocks top-to-bottom, left-to-right. The
// decoder walks the identical order; the per-component DC predictors are
// the only state carried between blocks.
func (e *encoder) encodeScan(bw *common.BitWriter) error {
	for my := 0; my < e.mcusY; my++ {
		for mx := 0; mx < e.mcusX; mx++ {
			for _, c := range e.components {
				for v := 0; v < c.v; v++ {
					for h := 0; h < c.h; h++ {
						if err := e.encodeBlock(bw, c, mx*c.h+h, my*c.v+v); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// encodeBlock runs one 8x8 block through level shift, forward DCT,
// quantization, zigzag reorder and Huffman coding.
func (e *encoder) encodeBlock(bw *common.BitWriter, c *encComponent, bx, by int) error {
	var block [64]float64
	for y := 0; y < 8; y++ {
		row := (by*8+y)*c.stride + bx*8
		for x := 0; x < 8; x++ {
			block[y*8+x] = float64(c.plane[row+x]) - 128
		}
	}

	common.ForwardDCT(&block)

	var levels [64]int32
	common.Quantize(&block, &e.qtables[c.tq], &levels)
	zz := common.ToZigzag(&levels)

	// DC: difference against the component's running predictor.
	diff := zz[0] - c.dcPred
	c.dcPred = zz[0]

	cat, bits := common.Category(int(diff))
	code, err := e.dcTables[c.th].Encode(byte(cat))
	if err != nil {
		return err
	}
	if err := bw.WriteBits(uint32(code.Code), code.Len); err != nil {
		return err
	}
	if cat > 0 {
		if err := bw.WriteBits(bits, cat); err != nil {
			return err
		}
	}

	// AC: run/size coding with ZRL for runs of 16 and EOB for the tail.
	acTable := e.acTables[c.th]
	run := 0
	for k := 1; k < 64; k++ {
		if zz[k] == 0 {
			run++
			continue
		}

		for run >= 16 {
			zrl, err := acTable.Encode(0xF0)
			if err != nil {
				return err
			}
			if err := bw.WriteBits(uint32(zrl.Code), zrl.Len); err != nil {
				return err
			}
			run -= 16
		}

		cat, bits := common.Category(int(zz[k]))
		code, err := acTable.Encode(byte(run<<4 | cat))
		if err != nil {
			return err
		}
		if err := bw.WriteBits(uint32(code.Code), code.Len); err != nil {
			return err
		}
		if err := bw.WriteBits(bits, cat); err != nil {
			return err
		}
		run = 0
	}

	if run > 0 {
		eob, err := acTable.Encode(0x00)
		if err != nil {
			return err
		}
		if err := bw.WriteBits(uint32(eob.Code), eob.Len); err != nil {
			return err
		}
	}

	return nil
}
