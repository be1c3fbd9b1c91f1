package systems

import (
	"math/rand"

	"github.com/pthm-cable/cyberlaughs/components"
	"github.com/pthm-cable/cyberlaughs/config"
)

// RippleSystem manages the expanding rings spawned at clicks.
type RippleSystem struct {
	Ripples []components.Ripple

	cfg     config.RippleConfig
	spawned uint64
	expired uint64
}

// NewRippleSystem creates an empty ripple system.
func NewRippleSystem(cfg config.RippleConfig) *RippleSystem {
	return &RippleSystem{
		Ripples: make([]components.Ripple, 0, 8),
		cfg:     cfg,
	}
}

// Emit spawns the configured number of ripples centered on (x, y).
func (s *RippleSystem) Emit(x, y float32, rng *rand.Rand) int {
	for i := 0; i < s.cfg.PerClick; i++ {
		s.Ripples = append(s.Ripples, components.Ripple{
			X:         x,
			Y:         y,
			MaxRadius: randRange(rng, s.cfg.MaxRadiusMin, s.cfg.MaxRadiusMax),
			Alpha:     float32(s.cfg.InitialAlpha),
		})
	}
	s.spawned += uint64(s.cfg.PerClick)
	return s.cfg.PerClick
}

// Update grows and fades every ripple, removing those too faint to see.
// Radius grows by a fixed step every frame; it stops at MaxRadius only when
// CapRadius is set. Returns the number removed.
func (s *RippleSystem) Update() int {
	growth := float32(s.cfg.Growth)
	decay := float32(s.cfg.Decay)
	eps := float32(s.cfg.Epsilon)
	capped := s.cfg.CapRadius

	alive := 0
	for i := range s.Ripples {
		r := &s.Ripples[i]

		r.Radius += growth
		if capped && r.MaxRadius > 0 && r.Radius > r.MaxRadius {
			r.Radius = r.MaxRadius
		}
		r.Alpha *= decay

		if r.Alpha < eps {
			continue
		}

		s.Ripples[alive] = *r
		alive++
	}

	removed := len(s.Ripples) - alive
	s.Ripples = s.Ripples[:alive]
	s.expired += uint64(removed)
	return removed
}

// Count returns the number of live ripples.
func (s *RippleSystem) Count() int {
	return len(s.Ripples)
}

// Spawned returns the total number of ripples ever emitted.
func (s *RippleSystem) Spawned() uint64 { return s.spawned }

// Expired returns the total number of ripples removed.
func (s *RippleSystem) Expired() uint64 { return s.expired }
