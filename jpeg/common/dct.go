package common

import "math"

// cosTable[x][f] = cos((2x+1)*f*pi/16), shared by the forward and inverse
// transforms.
var cosTable [8][8]float64

// scale[f] is the orthonormal DCT-II scale factor for frequency f.
var dctScale [8]float64

func init() {
	for x := 0; x < 8; x++ {
		for f := 0; f < 8; f++ {
			cosTable[x][f] = math.Cos(float64(2*x+1) * float64(f) * math.Pi / 16.0)
		}
	}
	dctScale[0] = math.Sqrt(1.0 / 8.0)
	for f := 1; f < 8; f++ {
		dctScale[f] = math.Sqrt(2.0 / 8.0)
	}
}

// ForwardDCT replaces the 64 level-shifted samples of an 8x8 block with
// their 2-D type-II DCT coefficients, in place. The transform is computed
// separably, one 1-D pass over the rows and one over the columns.
func ForwardDCT(block *[64]float64) {
	var tmp [64]float64

	// Rows.
	for y := 0; y < 8; y++ {
		row := y * 8
		for f := 0; f < 8; f++ {
			sum := 0.0
			for x := 0; x < 8; x++ {
				sum += block[row+x] * cosTable[x][f]
			}
			tmp[row+f] = dctScale[f] * sum
		}
	}

	// Columns.
	for x := 0; x < 8; x++ {
		for f := 0; f < 8; f++ {
			sum := 0.0
			for y := 0; y < 8; y++ {
				sum += tmp[y*8+x] * cosTable[y][f]
			}
			block[f*8+x] = dctScale[f] * sum
		}
	}
}

// InverseDCT replaces the 64 DCT coefficients of an 8x8 block with the
// reconstructed spatial samples (2-D type-III DCT), in place. It is the
// exact mathematical inverse of ForwardDCT.
func InverseDCT(block *[64]float64) {
	var tmp [64]float64

	// Columns.
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			sum := 0.0
			for f := 0; f < 8; f++ {
				sum += dctScale[f] * block[f*8+x] * cosTable[y][f]
			}
			tmp[y*8+x] = sum
		}
	}

	// Rows.
	for y := 0; y < 8; y++ {
		row := y * 8
		for x := 0; x < 8; x++ {
			sum := 0.0
			for f := 0; f < 8; f++ {
				sum += dctScale[f] * tmp[row+f] * cosTable[x][f]
			}
			block[row+x] = sum
		}
	}
}
