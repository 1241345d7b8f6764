package common

// BT.601 color conversion in 16.16 fixed point, with rounding. The
// constants are the usual 65536-scaled matrix entries; the luma row sums
// to exactly 65536 so white maps to Y=255 with no drift.

// RGBToYCbCr converts one RGB sample triple to YCbCr. All outputs are
// rounded and clamped to [0,255]: black maps to (0,128,128) and white to
// (255,128,128).
func RGBToYCbCr(r, g, b byte) (byte, byte, byte) {
	ri, gi, bi := int(r), int(g), int(b)

	y := (19595*ri + 38470*gi + 7471*bi + 32768) >> 16
	cb := (-11056*ri - 21712*gi + 32768*bi + 8421376) >> 16
	cr := (32768*ri - 27440*gi - 5328*bi + 8421376) >> 16

	return byte(Clamp(y, 0, 255)),
		byte(Clamp(cb, 0, 255)),
		byte(Clamp(cr, 0, 255))
}

// YCbCrToRGB converts one YCbCr sample triple back to RGB, rounded and
// clamped to [0,255]. A round trip through both conversions reproduces the
// original channels within +/-2.
func YCbCrToRGB(y, cb, cr byte) (byte, byte, byte) {
	yi := int(y)
	cbi := int(cb) - 128
	cri := int(cr) - 128

	r := yi + (91881*cri+32768)>>16
	g := yi - (22554*cbi+46802*cri+32768)>>16
	b := yi + (116130*cbi+32768)>>16

	return byte(Clamp(r, 0, 255)),
		byte(Clamp(g, 0, 255)),
		byte(Clamp(b, 0, 255))
}
