// Package components defines the data carried by field elements.
package components

// Kind tags which population a particle belongs to.
type Kind uint8

const (
	KindAmbient Kind = iota // persistent drifting mote, wraps at edges
	KindBurst               // short-lived click burst particle
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// Position represents a point in viewport pixel space.
type Position struct {
	X, Y float32
}

// Velocity represents a velocity in pixels per frame.
type Velocity struct {
	X, Y float32
}

// Mote holds the fixed appearance of an ambient particle.
type Mote struct {
	Radius    float32
	BaseAlpha float32 // (0,1], never decays
	Kind      Kind
}

// BurstParticle is one particle of a click burst.
type BurstParticle struct {
	X, Y       float32
	VelX, VelY float32
	Radius     float32
	Alpha      float32 // base alpha, drawn as Alpha * Life
	Life       float32 // starts at 1, decremented every frame
	Kind       Kind
}

// Ripple is an expanding ring spawned at a click.
type Ripple struct {
	X, Y      float32 // fixed center
	Radius    float32
	MaxRadius float32
	Alpha     float32 // decays multiplicatively
}
