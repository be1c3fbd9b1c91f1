// Package raster provides software field surfaces: an anti-aliased RGBA
// image for headless runs and snapshots, and a coarse cell grid for
// terminal output.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/pthm-cable/cyberlaughs/field"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522848

// ImageSurface renders a field into an in-memory RGBA image.
type ImageSurface struct {
	Background color.NRGBA

	img *image.RGBA
	z   vector.Rasterizer
}

// NewImageSurface creates a surface that clears to bg every frame.
func NewImageSurface(bg color.NRGBA) *ImageSurface {
	return &ImageSurface{Background: bg}
}

func (s *ImageSurface) Acquire(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: image size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Resize replaces the backing image. Content is redrawn on the next frame.
func (s *ImageSurface) Resize(width, height int) error {
	return s.Acquire(width, height)
}

func (s *ImageSurface) Begin() error {
	if s.img == nil {
		return field.ErrSurfaceLost
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
	return nil
}

func (s *ImageSurface) FillCircle(x, y, radius float32, c color.NRGBA) {
	if radius <= 0 || c.A == 0 {
		return
	}
	box, ok := s.clip(x, y, radius)
	if !ok {
		return
	}
	s.z.Reset(box.Dx(), box.Dy())
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	addCircle(&s.z, x-ox, y-oy, radius, false)
	s.z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

// StrokeCircle draws a ring as the difference of two circles wound in
// opposite directions.
func (s *ImageSurface) StrokeCircle(x, y, radius, width float32, c color.NRGBA) {
	if radius <= 0 || width <= 0 || c.A == 0 {
		return
	}
	outer := radius + width/2
	inner := radius - width/2

	box, ok := s.clip(x, y, outer)
	if !ok {
		return
	}
	s.z.Reset(box.Dx(), box.Dy())
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	addCircle(&s.z, x-ox, y-oy, outer, false)
	if inner > 0 {
		addCircle(&s.z, x-ox, y-oy, inner, true)
	}
	s.z.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

func (s *ImageSurface) End() {}

func (s *ImageSurface) Release() {
	s.img = nil
}

// Image returns the current frame. It is nil before Acquire and after Release.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Label draws a line of 7x13 bitmap text with its top-left corner at (x, y).
func (s *ImageSurface) Label(x, y int, text string, c color.Color) {
	if s.img == nil {
		return
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

// WritePNG encodes the current frame to path.
func (s *ImageSurface) WritePNG(path string) error {
	if s.img == nil {
		return field.ErrSurfaceLost
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, s.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return f.Close()
}

// clip returns the pixel box covering a circle of radius r at (x, y),
// intersected with the image.
func (s *ImageSurface) clip(x, y, r float32) (image.Rectangle, bool) {
	box := image.Rect(
		int(math.Floor(float64(x-r)))-1,
		int(math.Floor(float64(y-r)))-1,
		int(math.Ceil(float64(x+r)))+1,
		int(math.Ceil(float64(y+r)))+1,
	).Intersect(s.img.Bounds())
	return box, !box.Empty()
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	if reverse {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	}
	z.ClosePath()
}
