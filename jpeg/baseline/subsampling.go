package baseline

// Subsampling selects how much the chroma planes are downsampled relative
// to luma when encoding color images.
type Subsampling int

const (
	// Subsample444 keeps chroma at full resolution.
	Subsample444 Subsampling = iota
	// Subsample422 halves chroma horizontally.
	Subsample422
	// Subsample420 halves chroma in both directions.
	Subsample420
)

// factors returns the luma sampling factors implied by the ratio; chroma
// is always 1x1.
func (s Subsampling) factors() (h, v int) {
	switch s {
	case Subsample422:
		return 2, 1
	case Subsample420:
		return 2, 2
	default:
		return 1, 1
	}
}

func (s Subsampling) valid() bool {
	return s == Subsample444 || s == Subsample422 || s == Subsample420
}

func (s Subsampling) String() string {
	switch s {
	case Subsample444:
		return "4:4:4"
	case Subsample422:
		return "4:2:2"
	case Subsample420:
		return "4:2:0"
	default:
		return "unknown"
	}
}
