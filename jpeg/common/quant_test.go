package common

import "testing"

func TestGenerateQuantTableQuality50(t *testing.T) {
	// Quality 50 reproduces the base tables unchanged.
	table := GenerateQuantTable(50, true)
	for i := 0; i < 64; i++ {
		if table[i] != BaseLuminanceQuantTable[i] {
			t.Errorf("entry %d = %d, want base value %d", i, table[i], BaseLuminanceQuantTable[i])
		}
	}

	chroma := GenerateQuantTable(50, false)
	for i := 0; i < 64; i++ {
		if chroma[i] != BaseChrominanceQuantTable[i] {
			t.Errorf("chroma entry %d = %d, want base value %d", i, chroma[i], BaseChrominanceQuantTable[i])
		}
	}
}

func TestGenerateQuantTableQuality100(t *testing.T) {
	// Quality 100 clamps every divisor to 1: near-lossless quantization.
	for _, lum := range []bool{true, false} {
		table := GenerateQuantTable(100, lum)
		for i := 0; i < 64; i++ {
			if table[i] != 1 {
				t.Errorf("luminance=%v entry %d = %d, want 1", lum, i, table[i])
			}
		}
	}
}

func TestGenerateQuantTableQuality1(t *testing.T) {
	// Quality 1 scales by 5000% and clamps at 255.
	table := GenerateQuantTable(1, true)
	for i := 0; i < 64; i++ {
		if table[i] < 1 || table[i] > 255 {
			t.Fatalf("entry %d = %d outside [1, 255]", i, table[i])
		}
	}
	// The base DC value 16 scales to (16*5000+50)/100, far above the clamp.
	if table[0] != 255 {
		t.Errorf("DC entry = %d, want 255", table[0])
	}
}

func TestGenerateQuantTableMonotonic(t *testing.T) {
	// Higher quality never produces a larger divisor.
	prev := GenerateQuantTable(1, true)
	for q := 2; q <= 100; q++ {
		cur := GenerateQuantTable(q, true)
		for i := 0; i < 64; i++ {
			if cur[i] > prev[i] {
				t.Fatalf("quality %d entry %d = %d exceeds quality %d value %d",
					q, i, cur[i], q-1, prev[i])
			}
		}
		prev = cur
	}
}

func TestQuantizeDequantize(t *testing.T) {
	table := GenerateQuantTable(50, true)

	var coef [64]float64
	for i := range coef {
		coef[i] = float64(i*7 - 200)
	}

	var levels [64]int32
	Quantize(&coef, &table, &levels)

	var recon [64]float64
	Dequantize(&levels, &table, &recon)

	// Reconstruction error is bounded by half the quantizer step.
	for i := 0; i < 64; i++ {
		diff := recon[i] - coef[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > float64(table[i])/2.0+1e-9 {
			t.Errorf("entry %d: error %f exceeds half step %d", i, diff, table[i])
		}
	}
}

func TestQuantizeRounding(t *testing.T) {
	var table [64]int32
	for i := range table {
		table[i] = 10
	}

	var coef [64]float64
	coef[0] = 14.9  // rounds to 1
	coef[1] = 15.1  // rounds to 2
	coef[2] = -14.9 // rounds to -1
	coef[3] = -15.1 // rounds to -2

	var levels [64]int32
	Quantize(&coef, &table, &levels)

	wants := []int32{1, 2, -1, -2}
	for i, want := range wants {
		if levels[i] != want {
			t.Errorf("level %d = %d, want %d", i, levels[i], want)
		}
	}
}
