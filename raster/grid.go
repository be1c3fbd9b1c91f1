package raster

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pthm-cable/cyberlaughs/field"
)

// Grid is a surface made of character cells, each standing for a
// CellW x CellH block of pixels. Draw calls composite their colour into the
// cells they touch; small shapes land whole in a single cell so that motes
// stay visible at terminal resolution.
type Grid struct {
	CellW, CellH int

	cols, rows int
	cells      []cellAccum
	stamp      []uint32
	gen        uint32
}

// cellAccum holds premultiplied colour and coverage.
type cellAccum struct {
	r, g, b, a float32
}

// NewGrid creates a grid with the given cell size in pixels.
func NewGrid(cellW, cellH int) *Grid {
	return &Grid{CellW: max(cellW, 1), CellH: max(cellH, 1)}
}

func (g *Grid) Acquire(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: grid size %dx%d", width, height)
	}
	g.cols = (width + g.CellW - 1) / g.CellW
	g.rows = (height + g.CellH - 1) / g.CellH
	g.cells = make([]cellAccum, g.cols*g.rows)
	g.stamp = make([]uint32, g.cols*g.rows)
	return nil
}

func (g *Grid) Resize(width, height int) error {
	return g.Acquire(width, height)
}

func (g *Grid) Begin() error {
	if g.cells == nil {
		return field.ErrSurfaceLost
	}
	clear(g.cells)
	return nil
}

// FillCircle deposits into every cell whose center the circle covers, or
// into the single cell under its center when it is smaller than a cell.
func (g *Grid) FillCircle(x, y, radius float32, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	g.gen++

	minCol, maxCol := g.span(x-radius, x+radius, g.CellW, g.cols)
	minRow, maxRow := g.span(y-radius, y+radius, g.CellH, g.rows)
	r2 := radius * radius
	hit := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx := (float32(col) + 0.5) * float32(g.CellW)
			cy := (float32(row) + 0.5) * float32(g.CellH)
			dx, dy := cx-x, cy-y
			if dx*dx+dy*dy <= r2 {
				g.deposit(col, row, c)
				hit = true
			}
		}
	}
	if !hit {
		g.depositAt(x, y, c)
	}
}

// StrokeCircle walks the circumference in sub-cell steps, touching each
// cell at most once.
func (g *Grid) StrokeCircle(x, y, radius, width float32, c color.NRGBA) {
	if c.A == 0 || radius <= 0 {
		return
	}
	g.gen++

	step := float64(min(g.CellW, g.CellH)) / 2
	n := int(math.Ceil(2 * math.Pi * float64(radius) / step))
	n = max(n, 8)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(float64(i) / float64(n) * 2 * math.Pi)
		g.depositAt(x+float32(cos)*radius, y+float32(sin)*radius, c)
	}
}

func (g *Grid) End() {}

func (g *Grid) Release() {
	g.cells = nil
	g.stamp = nil
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Cell returns the composited colour of a cell and its coverage in [0,1].
func (g *Grid) Cell(col, row int) (color.NRGBA, float32) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows || g.cells == nil {
		return color.NRGBA{}, 0
	}
	a := g.cells[row*g.cols+col]
	if a.a <= 0 {
		return color.NRGBA{}, 0
	}
	return color.NRGBA{
		R: uint8(math.Min(float64(a.r/a.a), 1)*255 + 0.5),
		G: uint8(math.Min(float64(a.g/a.a), 1)*255 + 0.5),
		B: uint8(math.Min(float64(a.b/a.a), 1)*255 + 0.5),
		A: 255,
	}, a.a
}

func (g *Grid) span(lo, hi float32, cell, limit int) (int, int) {
	first := int(math.Floor(float64(lo) / float64(cell)))
	last := int(math.Floor(float64(hi) / float64(cell)))
	return max(first, 0), min(last, limit-1)
}

func (g *Grid) depositAt(x, y float32, c color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}
	col := int(x) / g.CellW
	row := int(y) / g.CellH
	if col >= g.cols || row >= g.rows {
		return
	}
	g.deposit(col, row, c)
}

// deposit composites c over a cell once per draw call.
func (g *Grid) deposit(col, row int, c color.NRGBA) {
	i := row*g.cols + col
	if g.stamp[i] == g.gen {
		return
	}
	g.stamp[i] = g.gen

	sa := float32(c.A) / 255
	acc := &g.cells[i]
	keep := 1 - sa
	acc.r = float32(c.R)/255*sa + acc.r*keep
	acc.g = float32(c.G)/255*sa + acc.g*keep
	acc.b = float32(c.B)/255*sa + acc.b*keep
	acc.a = sa + acc.a*keep
}
