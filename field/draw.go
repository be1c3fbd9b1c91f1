package field

import (
	"github.com/pthm-cable/cyberlaughs/components"
	"github.com/pthm-cable/cyberlaughs/config"
)

// drawLocked paints the current state in back-to-front order: ambient motes,
// bursts, ripples, then the cursor.
func (f *Field) drawLocked() {
	pal := &f.cfg.Palette
	accent := pal.AccentRGB

	f.ambient.Each(func(pos *components.Position, _ *components.Velocity, mote *components.Mote) {
		f.surface.FillCircle(pos.X, pos.Y, mote.Radius, config.WithAlpha(accent, mote.BaseAlpha))
	})

	for i := range f.bursts.Particles {
		p := &f.bursts.Particles[i]
		f.surface.FillCircle(p.X, p.Y, p.Radius, config.WithAlpha(accent, p.Alpha*p.Life))
	}

	lineWidth := float32(f.cfg.Ripple.LineWidth)
	for i := range f.ripples.Ripples {
		r := &f.ripples.Ripples[i]
		f.surface.StrokeCircle(r.X, r.Y, r.Radius, lineWidth, config.WithAlpha(accent, r.Alpha))
	}

	if f.cursor.Visible() {
		c := &f.cfg.Cursor
		f.surface.FillCircle(f.cursor.DotX, f.cursor.DotY, float32(c.DotRadius), pal.CursorRGB)
		f.surface.StrokeCircle(f.cursor.RingX, f.cursor.RingY, float32(c.RingRadius), float32(c.RingWidth),
			config.WithAlpha(pal.CursorRGB, float32(c.RingAlpha)))
	}
}
