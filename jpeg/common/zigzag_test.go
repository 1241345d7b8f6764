package common

import "testing"

func TestZigZagIsPermutation(t *testing.T) {
	var seen [64]bool
	for k, idx := range ZigZag {
		if idx < 0 || idx > 63 {
			t.Fatalf("ZigZag[%d] = %d out of range", k, idx)
		}
		if seen[idx] {
			t.Fatalf("ZigZag[%d] = %d repeated", k, idx)
		}
		seen[idx] = true
	}
}

func TestZigZagKnownPositions(t *testing.T) {
	tests := []struct {
		pos  int
		want int
	}{
		{0, 0},   // DC stays first
		{1, 1},   // right neighbor
		{2, 8},   // down-left
		{3, 16},  // start of third row
		{4, 9},   // diagonal
		{5, 2},   // back up to the first row
		{63, 63}, // last coefficient stays last
	}

	for _, tt := range tests {
		if got := ZigZag[tt.pos]; got != tt.want {
			t.Errorf("ZigZag[%d] = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestZigzagRoundTrip(t *testing.T) {
	var natural [64]int32
	for i := range natural {
		natural[i] = int32(i * 3)
	}

	zz := ToZigzag(&natural)
	back := FromZigzag(&zz)

	if back != natural {
		t.Errorf("ToZigzag followed by FromZigzag changed the block")
	}
}

func TestToZigzagOrdering(t *testing.T) {
	// Mark each natural position with its own index; the zigzag view
	// must read them out along the diagonals.
	var natural [64]int32
	for i := range natural {
		natural[i] = int32(i)
	}

	zz := ToZigzag(&natural)
	for k := 0; k < 64; k++ {
		if zz[k] != int32(ZigZag[k]) {
			t.Fatalf("zigzag position %d holds %d, want %d", k, zz[k], ZigZag[k])
		}
	}
}
