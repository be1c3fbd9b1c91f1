package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pthm-cable/cyberlaughs/field"
)

// imageSurface renders the field into an offscreen ebiten image that the
// game copies to the screen each Draw.
type imageSurface struct {
	background color.NRGBA
	img        *ebiten.Image
}

func (s *imageSurface) Acquire(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ebiten surface size %dx%d", width, height)
	}
	s.Release()
	s.img = ebiten.NewImage(width, height)
	return nil
}

func (s *imageSurface) Resize(width, height int) error {
	return s.Acquire(width, height)
}

func (s *imageSurface) Begin() error {
	if s.img == nil {
		return field.ErrSurfaceLost
	}
	s.img.Fill(s.background)
	return nil
}

func (s *imageSurface) FillCircle(x, y, radius float32, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, x, y, radius, c, true)
}

func (s *imageSurface) StrokeCircle(x, y, radius, width float32, c color.NRGBA) {
	vector.StrokeCircle(s.img, x, y, radius, width, c, true)
}

func (s *imageSurface) End() {}

func (s *imageSurface) Release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
