package common

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBitWriterPacking(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	// 0b10110, 0b11, 0b10101010 pack to 0b10110111 0b0101010 with a
	// final 1-padding bit on flush.
	if err := w.WriteBits(0b10110, 5); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.WriteBits(0b11, 2); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.WriteBits(0b10101010, 8); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []byte{0b10110111, 0b01010101}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("packed bytes = %08b, want %08b", buf.Bytes(), want)
	}
}

func TestBitWriterStuffing(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	if err := w.WriteBits(0xFF, 8); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []byte{0xFF, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("stuffed output = % X, want % X", buf.Bytes(), want)
	}
}

func TestBitWriterPaddingStuffs(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	// 7 one-bits plus 1-padding makes 0xFF, which must also be stuffed.
	if err := w.WriteBits(0x7F, 7); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []byte{0xFF, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("padded output = % X, want % X", buf.Bytes(), want)
	}
}

func TestBitReaderDestuffing(t *testing.T) {
	r := NewBitReader([]byte{0xFF, 0x00, 0xAB})

	v, err := r.ReadBits(8)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if v != 0xFF {
		t.Errorf("first byte = %02X, want FF", v)
	}

	v, err = r.ReadBits(8)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if v != 0xAB {
		t.Errorf("second byte = %02X, want AB", v)
	}
}

func TestBitReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewBitWriter(&buf)

	writes := []struct {
		value uint32
		n     int
	}{
		{0b1, 1}, {0b0, 1}, {0xFF, 8}, {0b101, 3}, {0x3FF, 10}, {0b0, 5},
	}
	for _, wr := range writes {
		if err := w.WriteBits(wr.value, wr.n); err != nil {
			t.Fatalf("WriteBits(%b, %d): %v", wr.value, wr.n, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewBitReader(buf.Bytes())
	for i, wr := range writes {
		v, err := r.ReadBits(wr.n)
		if err != nil {
			t.Fatalf("ReadBits %d: %v", i, err)
		}
		if v != wr.value {
			t.Errorf("read %d = %b, want %b", i, v, wr.value)
		}
	}
}

func TestBitReaderExhaustion(t *testing.T) {
	r := NewBitReader([]byte{0xA0})

	// Reading past the end zero-pads the partial request.
	v, err := r.ReadBits(12)
	if err != nil {
		t.Fatalf("partial read: %v", err)
	}
	if v != 0xA00 {
		t.Errorf("padded value = %03X, want A00", v)
	}

	// With nothing at all left, further reads report EOF.
	if _, err := r.ReadBits(1); !errors.Is(err, io.EOF) {
		t.Errorf("exhausted read error = %v, want io.EOF", err)
	}
}

func TestBitReaderZeroBits(t *testing.T) {
	r := NewBitReader(nil)
	v, err := r.ReadBits(0)
	if err != nil || v != 0 {
		t.Errorf("ReadBits(0) = (%d, %v), want (0, nil)", v, err)
	}
}

func TestBitReaderRestart(t *testing.T) {
	// One data byte, an RST0 marker, then another data byte.
	r := NewBitReader([]byte{0xAB, 0xFF, 0xD0, 0xCD})

	if v, err := r.ReadBits(8); err != nil || v != 0xAB {
		t.Fatalf("first byte = (%02X, %v), want (AB, nil)", v, err)
	}

	marker := r.Restart()
	if marker != MarkerRST0 {
		t.Fatalf("Restart marker = %04X, want %04X", marker, MarkerRST0)
	}

	if v, err := r.ReadBits(8); err != nil || v != 0xCD {
		t.Fatalf("post-restart byte = (%02X, %v), want (CD, nil)", v, err)
	}
}
