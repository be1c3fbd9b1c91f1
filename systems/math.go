package systems

import (
	"math"
	"math/rand"
)

// Bounds represents the viewport the field simulates in.
type Bounds struct {
	Width, Height float32
}

// Pointer is the last known pointer position.
// Valid is false until the first pointer event arrives.
type Pointer struct {
	X, Y  float32
	Valid bool
}

// wrap folds v into [0, size). Positions already in range are returned unchanged.
func wrap(v, size float32) float32 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	r := mod(v, size)
	// Rounding can land exactly on the far edge
	if r >= size {
		r = 0
	}
	return r
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// randRange returns a value in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float32 {
	return float32(lo) + rng.Float32()*float32(hi-lo)
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
