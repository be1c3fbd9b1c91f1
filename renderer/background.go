package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberlaughs/config"
)

// BackgroundRenderer paints the page backdrop behind the field: a vertical
// gradient from the palette background toward a faint accent tint.
type BackgroundRenderer struct {
	top, bottom rl.Color
}

// NewBackgroundRenderer derives the gradient from a palette.
func NewBackgroundRenderer(p config.PaletteConfig) *BackgroundRenderer {
	b := &BackgroundRenderer{}
	b.SetPalette(p)
	return b
}

// SetPalette recomputes the gradient, e.g. after a variant switch.
func (b *BackgroundRenderer) SetPalette(p config.PaletteConfig) {
	b.top = ToColor(p.BackgroundRGB)
	b.bottom = ToColor(config.Blend(p.BackgroundRGB, p.AccentRGB, 0.06))
}

// Draw fills the screen with the gradient.
func (b *BackgroundRenderer) Draw(width, height int32) {
	rl.DrawRectangleGradientV(0, 0, width, height, b.top, b.bottom)
}
