package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Variant      string
	Ambient      int
	Bursts       int
	Ripples      int
	Clicks       uint64
	Tick         int32
	FPS          int32
	FrameUS      int64
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32

	// BurstScale is the burst count drawn as a full bar (0 = 120)
	BurstScale int
	Accent     rl.Color
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), width: 220}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	t := r.Theme
	x, y := t.Padding, t.Padding
	inner := h.width - 2*t.Padding

	r.DrawPanel(x, y, h.width, 9*t.LineHeight+t.TitleSize+2*t.Padding)
	x += t.Padding
	y += t.Padding

	rl.DrawText(data.Title, x, y, t.TitleSize, t.Title)
	y += t.TitleSize + 6

	variant := data.Variant
	if variant == "" {
		variant = "default"
	}
	y = r.DrawLabelValue(x, y, "Variant", variant)
	y = r.DrawLabelValue(x, y, "Ambient", fmt.Sprintf("%d", data.Ambient))

	scale := data.BurstScale
	if scale <= 0 {
		scale = 120
	}
	accent := data.Accent
	if accent.A == 0 {
		accent = t.Title
	}
	y = r.DrawBar(x, y, fmt.Sprintf("Bursts %d", data.Bursts), float32(data.Bursts)/float32(scale), inner, accent)
	y = r.DrawLabelValue(x, y, "Ripples", fmt.Sprintf("%d", data.Ripples))
	y = r.DrawLabelValue(x, y, "Clicks", fmt.Sprintf("%d", data.Clicks))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d (%dus)", data.FPS, data.FrameUS))
	y = r.DrawColorSwatch(x, y, "Accent", accent)

	// Status
	if data.Paused {
		rl.DrawText("PAUSED", x, y, t.FontSize, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
