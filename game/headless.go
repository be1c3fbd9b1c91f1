package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
)

// script plays the part of a visitor in headless runs: the pointer wanders
// on a slow Lissajous path and clicks land at random spots.
func (g *Game) script() {
	t := float64(g.tick)
	w, h := float64(g.width), float64(g.height)
	x := w/2 + w/3*math.Sin(t*0.013)
	y := h/2 + h/3*math.Sin(t*0.017+1)
	g.events.PointerMove(float32(x), float32(y))

	if g.clickEvery > 0 && g.tick%int32(g.clickEvery) == 0 {
		cx := g.scriptRng.Float32() * float32(g.width)
		cy := g.scriptRng.Float32() * float32(g.height)
		g.events.Click(cx, cy)
	}
}

// snapshot writes the current frame to a numbered PNG when due.
func (g *Game) snapshot() {
	if g.snapshotDir == "" || g.snapshotEvery <= 0 || g.tick == 0 || g.tick%int32(g.snapshotEvery) != 0 {
		return
	}
	if g.image.Image() == nil {
		return
	}

	snap := g.field.Snapshot()
	label := fmt.Sprintf("tick %d  bursts %d  ripples %d", g.tick, snap.Bursts, snap.Ripples)
	if v := g.cfg.Derived.Variant; v != "" {
		label += "  " + v
	}
	g.image.Label(8, 8, label, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	path := filepath.Join(g.snapshotDir, fmt.Sprintf("frame_%06d.png", g.tick))
	if err := g.image.WritePNG(path); err != nil {
		slog.Error("failed to write snapshot", "path", path, "error", err)
		return
	}
	slog.Debug("snapshot written", "path", path)
}
