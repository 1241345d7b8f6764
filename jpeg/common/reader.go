package common

import (
	"encoding/binary"
	"errors"
	"io"
)

// Reader provides utilities for reading the segment structure of a JPEG
// stream: markers, length-prefixed segments and raw bytes.
type Reader struct {
	r   io.Reader
	buf [2]byte
}

// NewReader creates a new segment reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	if err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads a 16-bit big-endian value.
func (r *Reader) ReadUint16() (uint16, error) {
	_, err := io.ReadFull(r.r, r.buf[:2])
	if err != nil {
		return 0, mapEOF(err)
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadMarker reads the next JPEG marker, skipping any 0xFF fill bytes
// before the marker code.
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, mapEOF(err)
	}
	if b != 0xFF {
		return 0, ErrInvalidMarker
	}

	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, mapEOF(err)
		}
		if b != 0xFF {
			break
		}
	}

	// 0x00 is a stuffed data byte, never a marker code.
	if b == 0x00 {
		return 0, ErrInvalidMarker
	}

	return uint16(0xFF00) | uint16(b), nil
}

// ReadSegment reads a length-prefixed segment and returns its payload,
// without the two length bytes.
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	// The length field counts itself.
	if length < 2 {
		return nil, ErrInvalidData
	}

	data := make([]byte, length-2)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, mapEOF(err)
	}

	return data, nil
}

// mapEOF converts an io end-of-input into the codec's truncation error; a
// well-formed stream never ends inside a structure we are reading.
func mapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncatedStream
	}
	return err
}
