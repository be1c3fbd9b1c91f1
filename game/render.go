package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberlaughs/renderer"
	"github.com/pthm-cable/cyberlaughs/ui"
)

// Draw presents the last field frame plus the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(g.fieldSurface.Background)

	g.fieldSurface.Draw()

	if g.showHUD {
		g.drawUI()
	}

	rl.EndDrawing()
	g.perfCollector.RecordFrame()
}

func (g *Game) drawUI() {
	snap := g.field.Snapshot()
	perf := g.perfCollector.Stats()

	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Screen.Title,
		Variant:      g.cfg.Derived.Variant,
		Ambient:      snap.Ambient,
		Bursts:       snap.Bursts,
		Ripples:      snap.Ripples,
		Clicks:       snap.Clicks,
		Tick:         g.tick,
		FPS:          rl.GetFPS(),
		FrameUS:      perf.AvgTickDuration.Microseconds(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.width),
		ScreenHeight: int32(g.height),
		BurstScale:   g.cfg.Field.Burst.Count * 10,
		Accent:       renderer.ToColor(g.cfg.Field.Palette.AccentRGB),
	})
	g.hud.DrawControls(int32(g.width), int32(g.height), "[Click] Burst  [Space] Pause  [V] Variant  [H] HUD  [F11] Fullscreen")
}
