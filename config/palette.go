package config

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteConfig holds the field colours as hex strings.
// The resolved colours are filled in after loading.
type PaletteConfig struct {
	Accent     string  `yaml:"accent"`
	Background string  `yaml:"background"`
	CursorMix  float64 `yaml:"cursor_mix"` // how far the cursor ring is pulled from accent toward white

	AccentRGB     color.NRGBA `yaml:"-"`
	BackgroundRGB color.NRGBA `yaml:"-"`
	CursorRGB     color.NRGBA `yaml:"-"`
}

// resolve parses the hex strings into colours.
func (p *PaletteConfig) resolve() error {
	accent, err := colorful.Hex(p.Accent)
	if err != nil {
		return fmt.Errorf("palette.accent %q: %w", p.Accent, err)
	}
	bg, err := colorful.Hex(p.Background)
	if err != nil {
		return fmt.Errorf("palette.background %q: %w", p.Background, err)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}

	p.AccentRGB = toNRGBA(accent)
	p.BackgroundRGB = toNRGBA(bg)
	p.CursorRGB = toNRGBA(accent.BlendLuv(white, p.CursorMix).Clamped())
	return nil
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.NRGBA, a float32) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Blend mixes two opaque colours in Lab space; t=0 yields from, t=1 yields to.
func Blend(from, to color.NRGBA, t float64) color.NRGBA {
	a, _ := colorful.MakeColor(opaque(from))
	b, _ := colorful.MakeColor(opaque(to))
	return toNRGBA(a.BlendLab(b, t).Clamped())
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
