package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input and forwards pointer events to the field.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}

	if rl.IsKeyPressed(rl.KeyV) {
		g.cycleVariant()
	}

	g.handlePointer()
}

// handlePointer forwards mouse motion and left clicks. Motion is only
// reported when the cursor actually moved.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	if mouse.X != g.lastMouseX || mouse.Y != g.lastMouseY {
		g.lastMouseX, g.lastMouseY = mouse.X, mouse.Y
		g.events.PointerMove(mouse.X, mouse.Y)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.events.Click(mouse.X, mouse.Y)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.events.Resize(w, h)
}

// cycleVariant moves to the next configured variant.
func (g *Game) cycleVariant() {
	if len(g.variants) == 0 {
		return
	}
	g.variantIdx = (g.variantIdx + 1) % len(g.variants)
	if err := g.SetVariant(g.variants[g.variantIdx]); err != nil {
		slog.Error("failed to apply variant", "variant", g.variants[g.variantIdx], "error", err)
	}
}
