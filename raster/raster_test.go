package raster

import (
	"errors"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/field"
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestImageSurfaceRequiresAcquire(t *testing.T) {
	s := NewImageSurface(black)
	if err := s.Begin(); !errors.Is(err, field.ErrSurfaceLost) {
		t.Errorf("Begin before Acquire = %v, want ErrSurfaceLost", err)
	}
	if err := s.Acquire(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestImageSurfaceFillCircle(t *testing.T) {
	s := NewImageSurface(black)
	if err := s.Acquire(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	s.FillCircle(50, 50, 10, red)
	s.End()

	img := s.Image()
	if got := img.RGBAAt(50, 50); got.R < 250 || got.G != 0 {
		t.Errorf("center pixel = %v, want red", got)
	}
	if got := img.RGBAAt(5, 5); got.R != 0 {
		t.Errorf("corner pixel = %v, want background", got)
	}

	// Next frame clears
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(50, 50); got.R != 0 {
		t.Errorf("pixel not cleared: %v", got)
	}
}

func TestImageSurfaceStrokeCircleIsHollow(t *testing.T) {
	s := NewImageSurface(black)
	if err := s.Acquire(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	s.StrokeCircle(50, 50, 20, 4, red)

	img := s.Image()
	if got := img.RGBAAt(70, 50); got.R < 200 {
		t.Errorf("ring pixel = %v, want red", got)
	}
	if got := img.RGBAAt(50, 50); got.R != 0 {
		t.Errorf("center pixel = %v, want background", got)
	}
}

func TestImageSurfaceClipsOffscreen(t *testing.T) {
	s := NewImageSurface(black)
	if err := s.Acquire(20, 20); err != nil {
		t.Fatal(err)
	}
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	// Fully outside and partially outside shapes must not panic
	s.FillCircle(-100, -100, 5, red)
	s.FillCircle(19, 19, 8, red)
	s.StrokeCircle(10, 10, 200, 2, red)
	if got := s.Image().RGBAAt(19, 19); got.R < 250 {
		t.Errorf("edge pixel = %v, want red", got)
	}
}

func TestImageSurfaceTranslucentBlend(t *testing.T) {
	s := NewImageSurface(black)
	if err := s.Acquire(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	s.FillCircle(5, 5, 4, config.WithAlpha(red, 0.5))
	got := s.Image().RGBAAt(5, 5)
	if got.R < 120 || got.R > 135 {
		t.Errorf("half-alpha red over black = %v, want R≈128", got)
	}
}

func TestImageSurfaceDrivesField(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	s := NewImageSurface(cfg.Field.Palette.BackgroundRGB)
	f := field.New(cfg.Field, field.Options{Surface: s, Rand: rand.New(rand.NewSource(1))})
	if err := f.Mount(200, 150); err != nil {
		t.Fatal(err)
	}
	f.OnClick(100, 75)
	for i := 0; i < 5; i++ {
		if err := f.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	s.Label(4, 4, "frame 5", color.White)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.WritePNG(path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	fh, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("snapshot size %v, want 200x150", b)
	}

	f.Unmount()
	if s.Image() != nil {
		t.Error("image kept after unmount")
	}
}

func TestGridFillSmallCircleLandsInOneCell(t *testing.T) {
	g := NewGrid(8, 16)
	if err := g.Acquire(80, 160); err != nil {
		t.Fatal(err)
	}
	if cols, rows := g.Size(); cols != 10 || rows != 10 {
		t.Fatalf("size = %dx%d, want 10x10", cols, rows)
	}
	if err := g.Begin(); err != nil {
		t.Fatal(err)
	}

	g.FillCircle(20, 40, 1, red)
	c, cov := g.Cell(2, 2)
	if cov != 1 || c != red {
		t.Errorf("cell (2,2) = %v cov %v, want opaque red", c, cov)
	}
	if _, cov := g.Cell(3, 2); cov != 0 {
		t.Errorf("neighbour cell covered: %v", cov)
	}
}

func TestGridFillLargeCircleCoversCells(t *testing.T) {
	g := NewGrid(8, 16)
	if err := g.Acquire(80, 160); err != nil {
		t.Fatal(err)
	}
	if err := g.Begin(); err != nil {
		t.Fatal(err)
	}
	g.FillCircle(40, 80, 30, config.WithAlpha(red, 0.5))

	covered := 0
	cols, rows := g.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if _, cov := g.Cell(col, row); cov > 0 {
				covered++
				if cov > 0.51 {
					t.Errorf("cell (%d,%d) composited twice: %v", col, row, cov)
				}
			}
		}
	}
	if covered < 10 {
		t.Errorf("covered %d cells, want a disc of cells", covered)
	}
}

func TestGridStrokeLeavesCenterEmpty(t *testing.T) {
	g := NewGrid(4, 4)
	if err := g.Acquire(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := g.Begin(); err != nil {
		t.Fatal(err)
	}
	g.StrokeCircle(50, 50, 30, 1, red)

	if _, cov := g.Cell(12, 12); cov != 0 {
		t.Errorf("center cell covered: %v", cov)
	}
	if _, cov := g.Cell(20, 12); cov == 0 {
		t.Error("ring cell (20,12) not covered")
	}
}

func TestGridReleaseLosesSurface(t *testing.T) {
	g := NewGrid(8, 16)
	if err := g.Acquire(80, 80); err != nil {
		t.Fatal(err)
	}
	g.Release()
	if err := g.Begin(); !errors.Is(err, field.ErrSurfaceLost) {
		t.Errorf("Begin after Release = %v, want ErrSurfaceLost", err)
	}
	if _, cov := g.Cell(0, 0); cov != 0 {
		t.Error("released grid reports coverage")
	}
}
