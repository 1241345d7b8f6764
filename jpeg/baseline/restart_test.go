package baseline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// buildRestartStream hand-assembles a 32x8 grayscale stream of flat
// mid-gray MCUs with a restart interval of one, so every MCU boundary
// carries an RSTn marker. The encoder never emits DRI; this exercises
// the decode side directly.
func buildRestartStream(t *testing.T, dropMarker bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := common.NewWriter(&buf)

	qtable := common.GenerateQuantTable(50, true)
	dcTable := common.BuildStandardHuffmanTable(common.StandardDCLuminanceBits, common.StandardDCLuminanceValues)
	acTable := common.BuildStandardHuffmanTable(common.StandardACLuminanceBits, common.StandardACLuminanceValues)

	if err := w.WriteMarker(common.MarkerSOI); err != nil {
		t.Fatal(err)
	}

	dqt := make([]byte, 65)
	for i := 0; i < 64; i++ {
		dqt[1+i] = byte(qtable[common.ZigZag[i]])
	}
	if err := w.WriteSegment(common.MarkerDQT, dqt); err != nil {
		t.Fatal(err)
	}

	sof := []byte{8, 0, 8, 0, 32, 1, 1, 0x11, 0}
	if err := w.WriteSegment(common.MarkerSOF0, sof); err != nil {
		t.Fatal(err)
	}

	if err := common.WriteHuffmanTable(w, 0, 0, dcTable); err != nil {
		t.Fatal(err)
	}
	if err := common.WriteHuffmanTable(w, 1, 0, acTable); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteSegment(common.MarkerDRI, []byte{0, 1}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteSegment(common.MarkerSOS, []byte{1, 1, 0x00, 0, 63, 0}); err != nil {
		t.Fatal(err)
	}

	// Four flat MCUs: each is DC category 0 plus EOB, separated by
	// restart markers cycling from RST0.
	dcZero, err := dcTable.Encode(0)
	if err != nil {
		t.Fatal(err)
	}
	eob, err := acTable.Encode(0x00)
	if err != nil {
		t.Fatal(err)
	}

	for mcu := 0; mcu < 4; mcu++ {
		if mcu > 0 && !dropMarker {
			if err := w.WriteMarker(common.MarkerRST0 + uint16(mcu-1)); err != nil {
				t.Fatal(err)
			}
		}

		var scan bytes.Buffer
		bw := common.NewBitWriter(&scan)
		if err := bw.WriteBits(uint32(dcZero.Code), dcZero.Len); err != nil {
			t.Fatal(err)
		}
		if err := bw.WriteBits(uint32(eob.Code), eob.Len); err != nil {
			t.Fatal(err)
		}
		if err := bw.Flush(); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteBytes(scan.Bytes()); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.WriteMarker(common.MarkerEOI); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestDecodeRestartIntervals(t *testing.T) {
	data := buildRestartStream(t, false)

	pixels, width, height, ncomp, err := DecodeComponents(data)
	if err != nil {
		t.Fatalf("DecodeComponents failed: %v", err)
	}
	if width != 32 || height != 8 || ncomp != 1 {
		t.Fatalf("decoded %dx%d with %d components, want 32x8 with 1", width, height, ncomp)
	}

	// Flat gray reconstructs exactly: zero coefficients plus the 128
	// level shift.
	for i, v := range pixels {
		if v != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, v)
		}
	}
}

func TestDecodeMissingRestartMarker(t *testing.T) {
	data := buildRestartStream(t, true)

	_, _, _, _, err := DecodeComponents(data)
	if err == nil {
		t.Fatal("expected error for missing restart markers")
	}
	if !errors.Is(err, common.ErrMalformedContainer) {
		t.Errorf("error = %v, want ErrMalformedContainer", err)
	}
}

func TestGetInfoReportsRestartInterval(t *testing.T) {
	data := buildRestartStream(t, false)

	info, err := GetInfo(data)
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if info.RestartInterval != 1 {
		t.Errorf("RestartInterval = %d, want 1", info.RestartInterval)
	}
}
