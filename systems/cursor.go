package systems

import "github.com/pthm-cable/cyberlaughs/config"

// CursorSystem tracks the custom cursor: a dot pinned to the pointer and a
// ring that eases toward it.
type CursorSystem struct {
	DotX, DotY   float32
	RingX, RingY float32

	cfg     config.CursorConfig
	visible bool
}

// NewCursorSystem creates a hidden cursor.
func NewCursorSystem(cfg config.CursorConfig) *CursorSystem {
	return &CursorSystem{cfg: cfg}
}

// Update moves the cursor toward the pointer. The cursor stays hidden until
// the pointer has been seen, then the ring snaps to it once and eases after.
func (s *CursorSystem) Update(ptr Pointer) {
	if !s.cfg.Enabled || !ptr.Valid {
		return
	}
	if !s.visible {
		s.RingX, s.RingY = ptr.X, ptr.Y
		s.visible = true
	}

	s.DotX, s.DotY = ptr.X, ptr.Y

	follow := float32(s.cfg.Follow)
	s.RingX += (ptr.X - s.RingX) * follow
	s.RingY += (ptr.Y - s.RingY) * follow
}

// Visible reports whether the cursor should be drawn.
func (s *CursorSystem) Visible() bool {
	return s.visible
}

// RingLag returns the squared distance between ring and dot.
func (s *CursorSystem) RingLag() float32 {
	return distanceSq(s.RingX, s.RingY, s.DotX, s.DotY)
}
