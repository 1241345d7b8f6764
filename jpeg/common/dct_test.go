package common

import (
	"math"
	"math/rand"
	"testing"
)

func randomBlock(rng *rand.Rand) [64]float64 {
	var block [64]float64
	for i := range block {
		block[i] = float64(rng.Intn(256)) - 128
	}
	return block
}

func TestDCTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		original := randomBlock(rng)

		block := original
		ForwardDCT(&block)
		InverseDCT(&block)

		for i := 0; i < 64; i++ {
			diff := math.Abs(block[i] - original[i])
			if diff > 0.5 {
				t.Fatalf("trial %d: sample %d differs by %f after round trip", trial, i, diff)
			}
		}
	}
}

func TestDCTMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 100; trial++ {
		original := randomBlock(rng)

		fast := original
		ForwardDCT(&fast)

		ref := original
		ReferenceForwardDCT(&ref)

		for i := 0; i < 64; i++ {
			diff := math.Abs(fast[i] - ref[i])
			if diff > 1.0 {
				t.Fatalf("trial %d: coefficient %d differs from reference by %f", trial, i, diff)
			}
		}
	}
}

func TestInverseDCTMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 100; trial++ {
		original := randomBlock(rng)

		fast := original
		InverseDCT(&fast)

		ref := original
		ReferenceInverseDCT(&ref)

		for i := 0; i < 64; i++ {
			diff := math.Abs(fast[i] - ref[i])
			if diff > 1.0 {
				t.Fatalf("trial %d: sample %d differs from reference by %f", trial, i, diff)
			}
		}
	}
}

func TestDCTConstantBlock(t *testing.T) {
	var block [64]float64
	for i := range block {
		block[i] = 100
	}

	ForwardDCT(&block)

	// A constant block concentrates all energy in the DC coefficient.
	wantDC := 100.0 * 8 // sum * (1/2)*(1/sqrt2) per axis applied twice = 8x value
	if math.Abs(block[0]-wantDC) > 0.01 {
		t.Errorf("DC coefficient = %f, want %f", block[0], wantDC)
	}
	for i := 1; i < 64; i++ {
		if math.Abs(block[i]) > 0.01 {
			t.Errorf("AC coefficient %d = %f, want 0", i, block[i])
		}
	}
}

func TestDCTZeroBlock(t *testing.T) {
	var block [64]float64
	ForwardDCT(&block)
	for i, v := range block {
		if v != 0 {
			t.Errorf("coefficient %d = %f, want 0", i, v)
		}
	}
	InverseDCT(&block)
	for i, v := range block {
		if v != 0 {
			t.Errorf("sample %d = %f, want 0", i, v)
		}
	}
}

func BenchmarkForwardDCT(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	block := randomBlock(rng)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := block
		ForwardDCT(&work)
	}
}

func BenchmarkInverseDCT(b *testing.B) {
	rng := rand.New(rand.NewSource(5))
	block := randomBlock(rng)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := block
		InverseDCT(&work)
	}
}
