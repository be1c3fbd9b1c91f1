// Package ui draws the raylib overlays shown on top of the field.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Title       rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	BarBg       rl.Color
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	BarHeight   int32
	FontSize    int32
	TitleSize   int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 10, G: 10, B: 15, A: 200},
		PanelBorder: rl.Color{R: 60, G: 56, B: 40, A: 255},
		Title:       rl.Color{R: 232, G: 197, B: 71, A: 255},
		LabelColor:  rl.Gray,
		ValueColor:  rl.LightGray,
		BarBg:       rl.Color{R: 40, G: 40, B: 40, A: 255},
		Padding:     10,
		LineHeight:  16,
		LabelWidth:  70,
		BarHeight:   8,
		FontSize:    12,
		TitleSize:   18,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the next Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a fill bar for value in [0, 1] and returns the next Y.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32, fill rl.Color) int32 {
	value = max(0, min(value, 1))

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	barX := x + r.Theme.LabelWidth
	barW := width - r.Theme.LabelWidth
	barY := y + (r.Theme.FontSize-r.Theme.BarHeight)/2
	rl.DrawRectangle(barX, barY, barW, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, barY, int32(float32(barW)*value), r.Theme.BarHeight, fill)
	return y + r.Theme.LineHeight
}

// DrawColorSwatch draws a labelled colour square and returns the next Y.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, c rl.Color) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	size := r.Theme.FontSize
	rl.DrawRectangle(x+r.Theme.LabelWidth, y, size*2, size, c)
	rl.DrawRectangleLines(x+r.Theme.LabelWidth, y, size*2, size, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}
