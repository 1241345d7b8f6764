package baseline

import (
	"bytes"
	"testing"

	"github.com/cocosip/go-jpeg-codec/jpeg/common"
)

// buildYCCKStream hand-assembles an 8x8 four-component stream whose
// APP14 segment carries Adobe transform 2, with one flat block per
// channel. The encoder only emits transform 0, so this exercises the
// YCCK decode path directly.
func buildYCCKStream(t *testing.T, y, cb, cr, k byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := common.NewWriter(&buf)

	qtable := common.GenerateQuantTable(50, true)
	dcTable := common.BuildStandardHuffmanTable(common.StandardDCLuminanceBits, common.StandardDCLuminanceValues)
	acTable := common.BuildStandardHuffmanTable(common.StandardACLuminanceBits, common.StandardACLuminanceValues)

	if err := w.WriteMarker(common.MarkerSOI); err != nil {
		t.Fatal(err)
	}

	app14 := []byte{'A', 'd', 'o', 'b', 'e', 0, 100, 0, 0, 0, 0, common.AdobeTransformYCCK}
	if err := w.WriteSegment(common.MarkerAPP14, app14); err != nil {
		t.Fatal(err)
	}

	dqt := make([]byte, 65)
	for i := 0; i < 64; i++ {
		dqt[1+i] = byte(qtable[common.ZigZag[i]])
	}
	if err := w.WriteSegment(common.MarkerDQT, dqt); err != nil {
		t.Fatal(err)
	}

	sof := []byte{8, 0, 8, 0, 8, 4,
		1, 0x11, 0,
		2, 0x11, 0,
		3, 0x11, 0,
		4, 0x11, 0,
	}
	if err := w.WriteSegment(common.MarkerSOF0, sof); err != nil {
		t.Fatal(err)
	}

	if err := common.WriteHuffmanTable(w, 0, 0, dcTable); err != nil {
		t.Fatal(err)
	}
	if err := common.WriteHuffmanTable(w, 1, 0, acTable); err != nil {
		t.Fatal(err)
	}

	sos := []byte{4, 1, 0x00, 2, 0x00, 3, 0x00, 4, 0x00, 0, 63, 0}
	if err := w.WriteSegment(common.MarkerSOS, sos); err != nil {
		t.Fatal(err)
	}

	eob, err := acTable.Encode(0x00)
	if err != nil {
		t.Fatal(err)
	}

	// One MCU: a DC-only flat block for each component in order. The
	// chosen sample values keep (v-128)*8 divisible by the DC quantizer
	// so every channel reconstructs exactly.
	var scan bytes.Buffer
	bw := common.NewBitWriter(&scan)
	for _, v := range []byte{y, cb, cr, k} {
		level := (int(v) - 128) * 8 / int(qtable[0])
		cat, bits := common.Category(level)
		code, err := dcTable.Encode(byte(cat))
		if err != nil {
			t.Fatal(err)
		}
		if err := bw.WriteBits(uint32(code.Code), code.Len); err != nil {
			t.Fatal(err)
		}
		if cat > 0 {
			if err := bw.WriteBits(bits, cat); err != nil {
				t.Fatal(err)
			}
		}
		if err := bw.WriteBits(uint32(eob.Code), eob.Len); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBytes(scan.Bytes()); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteMarker(common.MarkerEOI); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestDecodeYCCK(t *testing.T) {
	// Every value satisfies (v-128)*8 % 16 == 0, so the DC-only blocks
	// decode back to exactly these samples.
	const y, cb, cr, k = 200, 120, 140, 90
	data := buildYCCKStream(t, y, cb, cr, k)

	pixels, width, height, ncomp, err := DecodeComponents(data)
	if err != nil {
		t.Fatalf("DecodeComponents failed: %v", err)
	}
	if width != 8 || height != 8 || ncomp != 4 {
		t.Fatalf("decoded %dx%d with %d components, want 8x8 with 4", width, height, ncomp)
	}

	// Transform 2 runs the first three channels through the YCbCr
	// inverse, inverts them into CMY, and passes K through.
	r, g, b := common.YCbCrToRGB(y, cb, cr)
	wantC, wantM, wantY, wantK := 255-r, 255-g, 255-b, byte(k)

	for p := 0; p < width*height; p++ {
		offset := p * 4
		got := [4]byte{pixels[offset], pixels[offset+1], pixels[offset+2], pixels[offset+3]}
		want := [4]byte{wantC, wantM, wantY, wantK}
		if got != want {
			t.Fatalf("pixel %d = %v, want %v", p, got, want)
		}
	}
}

func TestGetInfoReportsYCCKTransform(t *testing.T) {
	data := buildYCCKStream(t, 128, 128, 128, 128)

	info, err := GetInfo(data)
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if info.ColorTransform != common.AdobeTransformYCCK {
		t.Errorf("ColorTransform = %d, want %d", info.ColorTransform, common.AdobeTransformYCCK)
	}
	if info.Components != 4 {
		t.Errorf("Components = %d, want 4", info.Components)
	}
}
