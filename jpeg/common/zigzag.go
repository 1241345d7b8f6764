package common

// ZigZag maps a zigzag scan position to its natural (row-major) index in
// an 8x8 block. ZigZag[k] is the natural index of the k-th coefficient in
// zigzag order.
var ZigZag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// ToZigzag reorders a block from natural row-major order to zigzag
// scan order.
func ToZigzag(block *[64]int32) [64]int32 {
	var out [64]int32
	for k := 0; k < 64; k++ {
		out[k] = block[ZigZag[k]]
	}
	return out
}

// FromZigzag restores a block from zigzag scan order to natural
// row-major order. FromZigzag(ToZigzag(x)) == x for any block.
func FromZigzag(block *[64]int32) [64]int32 {
	var out [64]int32
	for k := 0; k < 64; k++ {
		out[ZigZag[k]] = block[k]
	}
	return out
}
