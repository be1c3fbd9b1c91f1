package renderer

import (
	"errors"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberlaughs/field"
)

// FieldSurface renders a particle field into an off-screen render texture.
// The texture survives paused frames, so the last frame stays on screen.
// All methods must run on the raylib thread.
type FieldSurface struct {
	Background rl.Color
	// Backdrop, when set, paints over the cleared texture before the field.
	Backdrop func(width, height int32)

	target rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
}

// NewFieldSurface creates a surface that clears to bg every frame.
func NewFieldSurface(bg color.NRGBA) *FieldSurface {
	return &FieldSurface{Background: ToColor(bg)}
}

func (s *FieldSurface) Acquire(width, height int) error {
	if !rl.IsWindowReady() {
		return errors.New("renderer: raylib window not initialized")
	}
	s.target = rl.LoadRenderTexture(int32(width), int32(height))
	if s.target.ID == 0 {
		return fmt.Errorf("renderer: render texture %dx%d not created", width, height)
	}
	s.width, s.height = int32(width), int32(height)
	s.loaded = true
	return nil
}

func (s *FieldSurface) Resize(width, height int) error {
	s.Release()
	return s.Acquire(width, height)
}

func (s *FieldSurface) Begin() error {
	if !s.loaded || !rl.IsWindowReady() {
		return field.ErrSurfaceLost
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(s.Background)
	if s.Backdrop != nil {
		s.Backdrop(s.width, s.height)
	}
	return nil
}

func (s *FieldSurface) FillCircle(x, y, radius float32, c color.NRGBA) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, ToColor(c))
}

func (s *FieldSurface) StrokeCircle(x, y, radius, width float32, c color.NRGBA) {
	inner := radius - width/2
	if inner < 0 {
		inner = 0
	}
	rl.DrawRing(rl.Vector2{X: x, Y: y}, inner, radius+width/2, 0, 360, ringSegments(radius), ToColor(c))
}

func (s *FieldSurface) End() {
	rl.EndTextureMode()
}

func (s *FieldSurface) Release() {
	if !s.loaded {
		return
	}
	rl.UnloadRenderTexture(s.target)
	s.loaded = false
}

// Draw blits the last rendered frame to the screen at the origin.
func (s *FieldSurface) Draw() {
	if !s.loaded {
		return
	}
	// Render textures are stored bottom-up
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.width), Height: -float32(s.height)}
	rl.DrawTextureRec(s.target.Texture, src, rl.Vector2{}, rl.White)
}

// ringSegments keeps large rings smooth without overdrawing small ones.
func ringSegments(radius float32) int32 {
	n := int32(radius / 2)
	if n < 24 {
		n = 24
	}
	if n > 180 {
		n = 180
	}
	return n
}

// ToColor converts a straight-alpha colour to raylib's colour type.
func ToColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
