package genetic

// Codec exposes a solution as a flat genome and repairs out-of-bounds solutions
type Codec[S Solution] interface {
	Encode(S) []float64
	Clamp(S) S
}
