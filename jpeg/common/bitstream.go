package common

import "io"

// BitWriter packs bits MSB-first into an io.Writer, inserting a 0x00
// stuffing byte after every completed 0xFF byte as required inside
// entropy-coded data.
type BitWriter struct {
	w     io.Writer
	bits  uint32 // bit buffer
	nBits int    // number of bits in buffer
	buf   [1]byte
}

// NewBitWriter creates a new bit writer.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBits writes the low n bits of bits, MSB first.
func (w *BitWriter) WriteBits(bits uint32, n int) error {
	if n == 0 {
		return nil
	}

	w.bits = (w.bits << uint(n)) | (bits & ((1 << uint(n)) - 1))
	w.nBits += n

	for w.nBits >= 8 {
		b := byte(w.bits >> uint(w.nBits-8))
		if err := w.writeByte(b); err != nil {
			return err
		}
		w.nBits -= 8
	}

	return nil
}

// writeByte emits one byte, stuffing 0x00 after 0xFF. Stuffing applies to
// every 0xFF, including ones produced purely by flush padding.
func (w *BitWriter) writeByte(b byte) error {
	w.buf[0] = b
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return err
	}
	if b == 0xFF {
		w.buf[0] = 0x00
		if _, err := w.w.Write(w.buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// Flush pads the final partial byte with 1-bits to a byte boundary and
// writes it out.
func (w *BitWriter) Flush() error {
	if w.nBits > 0 {
		pad := uint(8 - w.nBits)
		b := byte(w.bits<<pad) | byte((1<<pad)-1)
		if err := w.writeByte(b); err != nil {
			return err
		}
		w.bits = 0
		w.nBits = 0
	}
	return nil
}

// BitReader unpacks bits MSB-first from entropy-coded data. It removes
// 0x00 stuffing bytes after 0xFF, stops feeding bits when a marker
// appears in the data, and pads an exhausted tail with zero bits rather
// than failing, so trailing flush padding never trips the decoder.
type BitReader struct {
	data   []byte
	pos    int
	bits   uint32
	nBits  int
	marker uint16 // marker found in the scan data, 0 if none yet
}

// NewBitReader creates a bit reader over raw scan data (still stuffed).
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// fill pulls bytes into the bit buffer until it holds at least n bits or
// the consumable data runs out.
func (r *BitReader) fill(n int) {
	for r.nBits < n && r.marker == 0 && r.pos < len(r.data) {
		b := r.data[r.pos]
		if b == 0xFF {
			if r.pos+1 >= len(r.data) {
				// Dangling 0xFF at the end of input; treat as exhausted.
				r.pos = len(r.data)
				return
			}
			next := r.data[r.pos+1]
			if next == 0x00 {
				// Stuffed byte: the 0xFF is data.
				r.pos += 2
				r.bits = (r.bits << 8) | 0xFF
				r.nBits += 8
				continue
			}
			// A marker interrupts the entropy-coded data.
			r.marker = uint16(0xFF00) | uint16(next)
			r.pos += 2
			return
		}
		r.pos++
		r.bits = (r.bits << 8) | uint32(b)
		r.nBits += 8
	}
}

// exhausted reports whether no further bits can ever become available.
func (r *BitReader) exhausted() bool {
	return r.marker != 0 || r.pos >= len(r.data)
}

// ReadBits reads n bits MSB-first, crossing byte boundaries as needed.
// When the input runs out mid-read the missing low bits are zero. It
// returns io.EOF only when no bits at all remain.
func (r *BitReader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}

	r.fill(n)

	if r.nBits >= n {
		r.nBits -= n
		return (r.bits >> uint(r.nBits)) & ((1 << uint(n)) - 1), nil
	}

	if r.nBits == 0 {
		return 0, io.EOF
	}

	// Partial tail: serve what is buffered, zero-padded to n bits.
	v := (r.bits & ((1 << uint(r.nBits)) - 1)) << uint(n-r.nBits)
	r.nBits = 0
	return v, nil
}

// ReadBit reads a single bit.
func (r *BitReader) ReadBit() (uint32, error) {
	return r.ReadBits(1)
}

// Marker returns the marker that interrupted the scan data, or 0 if none
// has been reached yet.
func (r *BitReader) Marker() uint16 {
	return r.marker
}

// Restart discards any buffered padding bits, consumes the marker expected
// at the now byte-aligned position and returns it. It returns 0 when no
// marker is present.
func (r *BitReader) Restart() uint16 {
	r.bits = 0
	r.nBits = 0
	if r.marker == 0 && r.pos+1 < len(r.data) && r.data[r.pos] == 0xFF && r.data[r.pos+1] != 0x00 {
		r.marker = uint16(0xFF00) | uint16(r.data[r.pos+1])
		r.pos += 2
	}
	m := r.marker
	r.marker = 0
	return m
}
