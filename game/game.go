// Package game hosts a particle field in a raylib window or headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/field"
	"github.com/pthm-cable/cyberlaughs/raster"
	"github.com/pthm-cable/cyberlaughs/renderer"
	"github.com/pthm-cable/cyberlaughs/telemetry"
	"github.com/pthm-cable/cyberlaughs/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Variant        string

	// Headless scripting
	ClickEvery    int // scripted click every N ticks (0 = never)
	SnapshotDir   string
	SnapshotEvery int // write a PNG every N ticks (0 = never)
}

// Game owns one mounted field plus the host plumbing around it.
type Game struct {
	cfg       *config.Config
	baseField config.FieldConfig
	rng       *rand.Rand
	scriptRng *rand.Rand

	field  *field.Field
	events *field.Dispatcher
	pump   *field.FramePump

	// Exactly one of these is set, depending on mode
	fieldSurface *renderer.FieldSurface
	image        *raster.ImageSurface

	background *renderer.BackgroundRenderer
	hud        *ui.HUD

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	tick           int32
	paused         bool
	showHUD        bool
	headless       bool
	stepsPerUpdate int
	width, height  int

	lastMouseX, lastMouseY float32
	variants               []string
	variantIdx             int

	clickEvery    int
	snapshotDir   string
	snapshotEvery int

	lostErr error
}

// NewGameWithOptions builds a game from the global config and mounts its field.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:            cfg,
		baseField:      cfg.Field,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		scriptRng:      rand.New(rand.NewSource(opts.Seed + 1)),
		events:         field.NewDispatcher(),
		pump:           field.NewFramePump(),
		hud:            ui.NewHUD(),
		perfCollector:  telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		logStats:       opts.LogStats,
		showHUD:        true,
		headless:       opts.Headless,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		width:          cfg.Screen.Width,
		height:         cfg.Screen.Height,
		variants:       cfg.VariantNames(),
		clickEvery:     opts.ClickEvery,
		snapshotDir:    opts.SnapshotDir,
		snapshotEvery:  opts.SnapshotEvery,
	}

	if opts.Variant != "" {
		if err := cfg.ApplyVariant(opts.Variant); err != nil {
			return nil, err
		}
		for i, name := range g.variants {
			if name == opts.Variant {
				g.variantIdx = i
			}
		}
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.collector.SetVariant(cfg.Derived.Variant)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if g.snapshotDir != "" {
		if err := os.MkdirAll(g.snapshotDir, 0755); err != nil {
			return nil, fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	if g.headless {
		g.image = raster.NewImageSurface(cfg.Field.Palette.BackgroundRGB)
	} else {
		g.background = renderer.NewBackgroundRenderer(cfg.Field.Palette)
		g.fieldSurface = renderer.NewFieldSurface(cfg.Field.Palette.BackgroundRGB)
		g.fieldSurface.Backdrop = g.background.Draw
	}

	if err := g.mountField(); err != nil {
		om.Close()
		return nil, err
	}
	return g, nil
}

// surface returns the field surface for the current mode.
func (g *Game) surface() field.Surface {
	if g.headless {
		return g.image
	}
	return g.fieldSurface
}

// mountField creates a field over the current config and mounts it.
func (g *Game) mountField() error {
	g.field = field.New(g.cfg.Field, field.Options{
		Surface:   g.surface(),
		Events:    g.events,
		Scheduler: g.pump,
		Rand:      g.rng,
		Logger:    slog.Default(),
		Perf:      g.perfCollector,
		OnError:   g.onFieldError,
	})
	if err := g.field.Mount(g.width, g.height); err != nil {
		return fmt.Errorf("mounting field: %w", err)
	}
	g.lostErr = nil
	return nil
}

// onFieldError runs inside the frame pump on the host goroutine.
func (g *Game) onFieldError(err error) {
	g.lostErr = err
}

// Update handles input and advances the field by one frame.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	g.step()
}

// UpdateHeadless advances the field without reading input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.script()
		g.step()
		g.snapshot()
	}
}

func (g *Game) step() {
	if g.lostErr != nil {
		g.remount()
		return
	}

	g.pump.Pump()
	g.tick++
	g.recordTelemetry()
}

// remount recovers from a lost surface by mounting a fresh field.
func (g *Game) remount() {
	slog.Warn("remounting field", "cause", g.lostErr, "tick", g.tick)
	g.field.Unmount()
	if err := g.mountField(); err != nil {
		slog.Error("remount failed", "error", err)
	}
}

// SetVariant swaps the field tuning for a named variant and remounts.
func (g *Game) SetVariant(name string) error {
	g.cfg.Field = g.baseField
	if err := g.cfg.ApplyVariant(name); err != nil {
		return err
	}
	if name == "" {
		g.cfg.Derived.Variant = ""
	}

	pal := g.cfg.Field.Palette
	if g.headless {
		g.image.Background = pal.BackgroundRGB
	} else {
		g.background.SetPalette(pal)
		g.fieldSurface.Background = renderer.ToColor(pal.BackgroundRGB)
	}
	g.collector.SetVariant(g.cfg.Derived.Variant)

	g.field.Unmount()
	if err := g.mountField(); err != nil {
		return err
	}
	slog.Info("variant applied", "variant", name)
	return nil
}

// Snapshot returns the field's current counters.
func (g *Game) Snapshot() field.Snapshot {
	return g.field.Snapshot()
}

// Unload releases the field and closes output files. Safe to call twice.
func (g *Game) Unload() {
	g.field.Unmount()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}

// Tick returns the number of frames stepped.
func (g *Game) Tick() int32 {
	return g.tick
}
