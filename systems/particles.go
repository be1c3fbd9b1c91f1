package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/cyberlaughs/components"
	"github.com/pthm-cable/cyberlaughs/config"
)

// BurstSystem manages the short-lived particles thrown out by clicks.
type BurstSystem struct {
	Particles []components.BurstParticle

	cfg     config.BurstConfig
	spawned uint64
	expired uint64
}

// NewBurstSystem creates an empty burst system.
func NewBurstSystem(cfg config.BurstConfig) *BurstSystem {
	return &BurstSystem{
		Particles: make([]components.BurstParticle, 0, max(cfg.Count*4, 16)),
		cfg:       cfg,
	}
}

// Emit throws one burst out radially from (x, y) and returns the number of
// particles added. Particles sit on evenly spaced spokes, each nudged by up
// to half the configured jitter. Exactly Count particles are added unless
// MaxAlive is set, in which case the batch is trimmed to fit under it.
// Particles already alive are never touched.
func (s *BurstSystem) Emit(x, y float32, rng *rand.Rand) int {
	n := s.cfg.Count
	if s.cfg.MaxAlive > 0 {
		room := s.cfg.MaxAlive - len(s.Particles)
		if room < n {
			n = max(room, 0)
		}
	}

	for i := 0; i < n; i++ {
		angle := float64(i)/float64(s.cfg.Count)*2*math.Pi + (rng.Float64()-0.5)*s.cfg.AngleJitter
		speed := randRange(rng, s.cfg.SpeedMin, s.cfg.SpeedMax)
		sin, cos := math.Sincos(angle)

		s.Particles = append(s.Particles, components.BurstParticle{
			X:      x,
			Y:      y,
			VelX:   float32(cos) * speed,
			VelY:   float32(sin) * speed,
			Radius: randRange(rng, s.cfg.RadiusMin, s.cfg.RadiusMax),
			Alpha:  float32(s.cfg.Alpha),
			Life:   1,
			Kind:   components.KindBurst,
		})
	}
	s.spawned += uint64(n)
	return n
}

// Update advances all particles and drops the ones whose life ran out.
// Returns the number removed.
func (s *BurstSystem) Update() int {
	damping := float32(s.cfg.Damping)
	decay := float32(s.cfg.DecayRate)
	eps := float32(s.cfg.Epsilon)

	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.VelX *= damping
		p.VelY *= damping
		p.Life -= decay

		p.X += p.VelX
		p.Y += p.VelY

		if p.Life <= eps {
			continue
		}

		s.Particles[alive] = *p
		alive++
	}

	removed := len(s.Particles) - alive
	s.Particles = s.Particles[:alive]
	s.expired += uint64(removed)
	return removed
}

// Count returns the number of live burst particles.
func (s *BurstSystem) Count() int {
	return len(s.Particles)
}

// Spawned returns the total number of particles ever emitted.
func (s *BurstSystem) Spawned() uint64 { return s.spawned }

// Expired returns the total number of particles removed.
func (s *BurstSystem) Expired() uint64 { return s.expired }
