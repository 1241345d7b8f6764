package common

// HuffmanTable is a canonical JPEG Huffman table. Codes are assigned in
// order of increasing length, then position in the symbol list, by the
// standard canonical construction; every code is 1-16 bits. Once built the
// table is immutable and may be shared across all blocks of a scan.
type HuffmanTable struct {
	// Bits[i] is the number of codes of length i+1 bits.
	Bits [16]int
	// Values holds the decoded symbols, in code order.
	Values []byte

	// Encode side: code/length per symbol, zero length means the symbol
	// is not in the table.
	codes [256]HuffmanCode

	// Decode side: canonical range tables plus an 8-bit lookup
	// acceleration for short codes.
	minCode [16]int32
	maxCode [16]int32
	valPtr  [16]int32
	lookup  [256]int16 // (length << 8) | symbol, -1 if absent
}

// HuffmanCode is one assigned (code, bit-length) pair.
type HuffmanCode struct {
	Code uint16
	Len  int
}

// Build derives the canonical code assignment and the decoding tables
// from Bits and Values. It rejects tables whose counts overflow the code
// space or disagree with the symbol list.
func (t *HuffmanTable) Build() error {
	total := 0
	for _, n := range t.Bits {
		if n < 0 {
			return ErrInvalidDHT
		}
		total += n
	}
	if total == 0 || total > 256 || total != len(t.Values) {
		return ErrInvalidDHT
	}

	// Canonical code assignment.
	t.codes = [256]HuffmanCode{}
	code := int32(0)
	p := 0
	for l := 0; l < 16; l++ {
		for i := 0; i < t.Bits[l]; i++ {
			if code >= 1<<uint(l+1) {
				return ErrInvalidDHT
			}
			t.codes[t.Values[p]] = HuffmanCode{Code: uint16(code), Len: l + 1}
			code++
			p++
		}
		code <<= 1
	}

	// Range tables for the bit-serial decode path.
	code = 0
	p = 0
	for l := 0; l < 16; l++ {
		if t.Bits[l] == 0 {
			t.maxCode[l] = -1
		} else {
			t.valPtr[l] = int32(p)
			t.minCode[l] = code
			p += t.Bits[l]
			code += int32(t.Bits[l])
			t.maxCode[l] = code - 1
		}
		code <<= 1
	}

	// 8-bit lookup for short codes.
	for i := range t.lookup {
		t.lookup[i] = -1
	}
	p = 0
	prefix := 0
	for l := 0; l < 8; l++ {
		for i := 0; i < t.Bits[l]; i++ {
			head := prefix << uint(7-l)
			for j := 0; j < 1<<uint(7-l); j++ {
				t.lookup[head+j] = int16((l+1)<<8 | int(t.Values[p]))
			}
			prefix++
			p++
		}
		prefix <<= 1
	}

	return nil
}

// Encode returns the code assigned to symbol. A symbol absent from the
// table is a hard error, never a silent default.
func (t *HuffmanTable) Encode(symbol byte) (HuffmanCode, error) {
	c := t.codes[symbol]
	if c.Len == 0 {
		return HuffmanCode{}, ErrInvalidHuffmanCode
	}
	return c, nil
}

// Decode reads the next Huffman-coded symbol from r. A bit pattern that
// matches no table entry is reported as ErrInvalidHuffmanCode.
func (t *HuffmanTable) Decode(r *BitReader) (byte, error) {
	// Fast path: all codes of 8 bits or fewer resolve in one lookup.
	r.fill(8)
	if r.nBits >= 8 {
		peek := (r.bits >> uint(r.nBits-8)) & 0xFF
		if entry := t.lookup[peek]; entry >= 0 {
			r.nBits -= int(entry >> 8)
			return byte(entry & 0xFF), nil
		}
	}

	// Bit-serial path for long codes and the padded tail.
	code := int32(0)
	for l := 0; l < 16; l++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | int32(bit)
		if t.maxCode[l] >= 0 && code >= t.minCode[l] && code <= t.maxCode[l] {
			return t.Values[t.valPtr[l]+code-t.minCode[l]], nil
		}
	}

	return 0, ErrInvalidHuffmanCode
}

// Category returns the magnitude category of a DC difference or AC level
// together with the appended bits that encode the value within the
// category. Category 0 carries no appended bits.
func Category(val int) (cat int, bits uint32) {
	if val == 0 {
		return 0, 0
	}

	absVal := val
	if absVal < 0 {
		absVal = -absVal
	}

	cat = 1
	for 1<<uint(cat) <= absVal {
		cat++
	}

	if val > 0 {
		bits = uint32(val)
	} else {
		bits = uint32(1<<uint(cat) + val - 1)
	}

	return cat, bits
}

// Extend sign-extends an unsigned bitCount-bit field: values at or above
// 2^(bitCount-1) stand for themselves, smaller values stand for
// value - (2^bitCount - 1).
func Extend(value uint32, bitCount int) int {
	if bitCount == 0 {
		return 0
	}
	v := int(value)
	if v < 1<<uint(bitCount-1) {
		v += -1<<uint(bitCount) + 1
	}
	return v
}

// ReceiveExtend reads bitCount appended bits and sign-extends them,
// combining the RECEIVE and EXTEND procedures.
func ReceiveExtend(r *BitReader, bitCount int) (int, error) {
	if bitCount == 0 {
		return 0, nil
	}
	bits, err := r.ReadBits(bitCount)
	if err != nil {
		return 0, err
	}
	return Extend(bits, bitCount), nil
}
