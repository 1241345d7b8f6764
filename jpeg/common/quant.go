package common

import "math"

// Standard quantization base tables from ITU-T T.81 Annex K.1, in natural
// row-major order. Encoders scale these by the quality factor; the scaled
// copies are written to the DQT segment in zigzag order.

// BaseLuminanceQuantTable is the standard luminance quantization table.
var BaseLuminanceQuantTable = [64]int32{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// BaseChrominanceQuantTable is the standard chrominance quantization table.
var BaseChrominanceQuantTable = [64]int32{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

// GenerateQuantTable scales the standard base table for the given quality
// factor (1-100) and component class. Quality 100 produces a table of all
// ones (no quantization), quality 50 reproduces the base table, and lower
// qualities increase the entries, clamped to 255. Every entry stays >= 1.
func GenerateQuantTable(quality int, isLuminance bool) [64]int32 {
	base := &BaseChrominanceQuantTable
	if isLuminance {
		base = &BaseLuminanceQuantTable
	}

	var scale int32
	if quality < 50 {
		scale = int32(5000 / quality)
	} else {
		scale = int32(200 - quality*2)
	}

	var result [64]int32
	for i := 0; i < 64; i++ {
		val := (base[i]*scale + 50) / 100
		if val < 1 {
			val = 1
		}
		if val > 255 {
			val = 255
		}
		result[i] = val
	}

	return result
}

// Quantize divides each DCT coefficient by the corresponding table entry,
// rounding to the nearest integer.
func Quantize(coef *[64]float64, table *[64]int32, out *[64]int32) {
	for i := 0; i < 64; i++ {
		out[i] = int32(math.Round(coef[i] / float64(table[i])))
	}
}

// Dequantize multiplies quantized levels back by the table entries,
// producing coefficients ready for the inverse transform. It inverts
// Quantize exactly up to the rounding Quantize already discarded.
func Dequantize(levels *[64]int32, table *[64]int32, out *[64]float64) {
	for i := 0; i < 64; i++ {
		out[i] = float64(levels[i] * table[i])
	}
}
