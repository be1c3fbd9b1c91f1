// Command ebitenfield runs the particle field under ebiten.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/field"
)

type Game struct {
	cfg  *config.Config
	base config.FieldConfig
	rng  *rand.Rand

	surface *imageSurface
	events  *field.Dispatcher
	pump    *field.FramePump
	field   *field.Field

	width, height int
	lastX, lastY  int
	variants      []string
	variantIdx    int
	showHelp      bool
	lost          error
}

func (g *Game) mount() error {
	g.field = field.New(g.cfg.Field, field.Options{
		Surface:   g.surface,
		Events:    g.events,
		Scheduler: g.pump,
		Rand:      g.rng,
		Logger:    slog.Default(),
		OnError:   func(err error) { g.lost = err },
	})
	g.lost = nil
	return g.field.Mount(g.width, g.height)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.cycleVariant()
	}

	x, y := ebiten.CursorPosition()
	if x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.events.PointerMove(float32(x), float32(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.events.Click(float32(x), float32(y))
	}

	if g.lost != nil {
		slog.Warn("remounting field", "cause", g.lost)
		g.field.Unmount()
		return g.mount()
	}
	g.pump.Pump()
	return nil
}

func (g *Game) cycleVariant() {
	if len(g.variants) == 0 {
		return
	}
	g.variantIdx = (g.variantIdx + 1) % len(g.variants)
	name := g.variants[g.variantIdx]

	g.cfg.Field = g.base
	if err := g.cfg.ApplyVariant(name); err != nil {
		slog.Error("failed to apply variant", "variant", name, "error", err)
		return
	}
	g.surface.background = g.cfg.Field.Palette.BackgroundRGB
	g.field.Unmount()
	if err := g.mount(); err != nil {
		slog.Error("failed to mount variant", "variant", name, "error", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.surface.background)
	if g.surface.img != nil {
		screen.DrawImage(g.surface.img, nil)
	}

	if !g.showHelp {
		return
	}
	snap := g.field.Snapshot()
	txt := fmt.Sprintf("%s  ambient %d  bursts %d  ripples %d  clicks %d  FPS %.0f",
		g.cfg.Derived.Variant, snap.Ambient, snap.Bursts, snap.Ripples, snap.Clicks, ebiten.ActualFPS())
	text.Draw(screen, txt, basicfont.Face7x13, 6, 18, color.White)
	text.Draw(screen, "[Click] Burst  [V] Variant  [H] Help  [Esc] Quit", basicfont.Face7x13, 6, 34, color.Gray{Y: 160})
}

// Layout tracks the window size and resizes the field to match.
func (g *Game) Layout(outW, outH int) (int, int) {
	if outW != g.width || outH != g.height {
		g.width, g.height = outW, outH
		g.events.Resize(outW, outH)
	}
	return outW, outH
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Named field variant to start with")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		log.Fatal(err)
	}
	cfg := config.Cfg()
	base := cfg.Field
	if err := cfg.ApplyVariant(*variant); err != nil {
		log.Fatal(err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:      cfg,
		base:     base,
		rng:      rand.New(rand.NewSource(rngSeed)),
		surface:  &imageSurface{background: cfg.Field.Palette.BackgroundRGB},
		events:   field.NewDispatcher(),
		pump:     field.NewFramePump(),
		width:    cfg.Screen.Width,
		height:   cfg.Screen.Height,
		variants: cfg.VariantNames(),
		showHelp: true,
	}
	for i, name := range g.variants {
		if name == cfg.Derived.Variant {
			g.variantIdx = i
		}
	}
	if err := g.mount(); err != nil {
		log.Fatal(err)
	}
	defer g.field.Unmount()

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.TargetFPS)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
