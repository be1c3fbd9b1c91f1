// Package systems contains the per-frame simulation steps of the particle field.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cyberlaughs/components"
	"github.com/pthm-cable/cyberlaughs/config"
)

// AmbientSystem owns the ambient mote population.
// Motes are never destroyed: they drift, are pushed away from the pointer,
// and wrap across the viewport edges.
type AmbientSystem struct {
	cfg       config.AmbientConfig
	repulsion config.RepulsionConfig

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Mote]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Mote]
	count  int
}

// NewAmbientSystem creates an empty ambient system.
func NewAmbientSystem(cfg config.AmbientConfig, repulsion config.RepulsionConfig) *AmbientSystem {
	s := &AmbientSystem{cfg: cfg, repulsion: repulsion}
	s.reset()
	return s
}

func (s *AmbientSystem) reset() {
	s.world = ecs.NewWorld()
	s.mapper = ecs.NewMap3[components.Position, components.Velocity, components.Mote](s.world)
	s.filter = ecs.NewFilter3[components.Position, components.Velocity, components.Mote](s.world)
	s.count = 0
}

// Seed replaces the population with n motes spread uniformly over bounds.
func (s *AmbientSystem) Seed(n int, bounds Bounds, rng *rand.Rand) {
	s.reset()

	spread := float32(s.cfg.VelocitySpread)
	for i := 0; i < n; i++ {
		pos := components.Position{
			X: wrap(rng.Float32()*bounds.Width, bounds.Width),
			Y: wrap(rng.Float32()*bounds.Height, bounds.Height),
		}
		vel := components.Velocity{
			X: (rng.Float32() - 0.5) * spread,
			Y: (rng.Float32() - 0.5) * spread,
		}
		alpha := randRange(rng, s.cfg.AlphaMin, s.cfg.AlphaMax)
		if alpha <= 0 {
			alpha = 0.01
		}
		mote := components.Mote{
			Radius:    randRange(rng, s.cfg.RadiusMin, s.cfg.RadiusMax),
			BaseAlpha: alpha,
			Kind:      components.KindAmbient,
		}
		s.mapper.NewEntity(&pos, &vel, &mote)
	}
	s.count = n
}

// Update advances every mote by one frame.
func (s *AmbientSystem) Update(ptr Pointer, bounds Bounds) {
	thresholdSq := float32(s.repulsion.ThresholdSq)
	radius := float32(s.repulsion.Radius)
	strength := float32(s.repulsion.Strength)
	damping := float32(s.cfg.Damping)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()

		// Pointer repulsion
		if ptr.Valid {
			dx := pos.X - ptr.X
			dy := pos.Y - ptr.Y
			d2 := dx*dx + dy*dy
			if d2 > 0 && d2 < thresholdSq {
				d := float32(math.Sqrt(float64(d2)))
				f := (radius - d) / radius * strength
				if f > 0 {
					vel.X += dx / d * f
					vel.Y += dy / d * f
				}
			}
		}

		vel.X *= damping
		vel.Y *= damping

		pos.X += vel.X
		pos.Y += vel.Y

		// Toroidal wrap
		pos.X = wrap(pos.X, bounds.Width)
		pos.Y = wrap(pos.Y, bounds.Height)
	}
}

// Each calls fn for every mote. fn must not retain the pointers.
func (s *AmbientSystem) Each(fn func(pos *components.Position, vel *components.Velocity, mote *components.Mote)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Count returns the number of motes.
func (s *AmbientSystem) Count() int {
	return s.count
}
