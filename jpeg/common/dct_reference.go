package common

// Direct O(N^4) transforms straight from the DCT definition. They are the
// correctness reference for the separable transforms in dct.go, which must
// agree with them within 1.0 per coefficient. The pipeline itself always
// uses the separable versions.

// ReferenceForwardDCT computes the 2-D type-II DCT of an 8x8 block by
// direct evaluation, in place.
func ReferenceForwardDCT(block *[64]float64) {
	var out [64]float64
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			sum := 0.0
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					sum += block[y*8+x] * cosTable[x][u] * cosTable[y][v]
				}
			}
			out[v*8+u] = dctScale[u] * dctScale[v] * sum
		}
	}
	*block = out
}

// ReferenceInverseDCT computes the 2-D type-III DCT of an 8x8 block by
// direct evaluation, in place.
func ReferenceInverseDCT(block *[64]float64) {
	var out [64]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sum := 0.0
			for v := 0; v < 8; v++ {
				for u := 0; u < 8; u++ {
					sum += dctScale[u] * dctScale[v] * block[v*8+u] * cosTable[x][u] * cosTable[y][v]
				}
			}
			out[y*8+x] = sum
		}
	}
	*block = out
}
