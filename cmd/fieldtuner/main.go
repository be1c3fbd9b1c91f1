// Field tuner - live particle field with sliders for its tuning.
//
// Usage: go run ./cmd/fieldtuner [-config path] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/field"
	"github.com/pthm-cable/cyberlaughs/renderer"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	previewW     = 820
	panelWidth   = windowWidth - previewW - 30
)

// slider binds one tunable to a raygui slider.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(f *config.FieldConfig) float32
	set      func(f *config.FieldConfig, v float32)
}

var sliders = []slider{
	{"Ambient count", 0, 300, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.Ambient.Count) },
		func(f *config.FieldConfig, v float32) { f.Ambient.Count = int(v) }},
	{"Ambient spread", 0, 2, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.Ambient.VelocitySpread) },
		func(f *config.FieldConfig, v float32) { f.Ambient.VelocitySpread = float64(v) }},
	{"Repulsion radius", 20, 200, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.Repulsion.Radius) },
		func(f *config.FieldConfig, v float32) {
			f.Repulsion.Radius = float64(v)
			f.Repulsion.ThresholdSq = float64(v*v) * 0.99
		}},
	{"Repulsion strength", 0, 0.6, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.Repulsion.Strength) },
		func(f *config.FieldConfig, v float32) { f.Repulsion.Strength = float64(v) }},
	{"Burst count", 0, 40, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.Burst.Count) },
		func(f *config.FieldConfig, v float32) { f.Burst.Count = int(v) }},
	{"Burst speed max", 0.5, 8, "%.1f",
		func(f *config.FieldConfig) float32 { return float32(f.Burst.SpeedMax) },
		func(f *config.FieldConfig, v float32) {
			f.Burst.SpeedMax = float64(v)
			f.Burst.SpeedMin = min(f.Burst.SpeedMin, f.Burst.SpeedMax)
		}},
	{"Burst decay", 0.005, 0.08, "%.3f",
		func(f *config.FieldConfig) float32 { return float32(f.Burst.DecayRate) },
		func(f *config.FieldConfig, v float32) { f.Burst.DecayRate = float64(v) }},
	{"Ripples per click", 0, 6, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.Ripple.PerClick) },
		func(f *config.FieldConfig, v float32) { f.Ripple.PerClick = int(v) }},
	{"Ripple growth", 0.5, 10, "%.1f",
		func(f *config.FieldConfig) float32 { return float32(f.Ripple.Growth) },
		func(f *config.FieldConfig, v float32) { f.Ripple.Growth = float64(v) }},
	{"Ripple decay", 0.8, 0.99, "%.3f",
		func(f *config.FieldConfig) float32 { return float32(f.Ripple.Decay) },
		func(f *config.FieldConfig, v float32) { f.Ripple.Decay = float64(v) }},
	{"Cursor follow", 0.02, 1, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.Cursor.Follow) },
		func(f *config.FieldConfig, v float32) { f.Cursor.Follow = float64(v) }},
}

type tuner struct {
	cfg     *config.Config
	base    config.FieldConfig
	rng     *rand.Rand
	surface *renderer.FieldSurface
	events  *field.Dispatcher
	pump    *field.FramePump
	field   *field.Field
	status  string
}

func (t *tuner) mount() error {
	t.field = field.New(t.cfg.Field, field.Options{
		Surface:   t.surface,
		Events:    t.events,
		Scheduler: t.pump,
		Rand:      t.rng,
		Logger:    slog.Default(),
	})
	return t.field.Mount(previewW, windowHeight)
}

// apply validates the edited tuning and remounts the preview with it.
func (t *tuner) apply() {
	if err := t.cfg.Validate(); err != nil {
		t.status = err.Error()
		return
	}
	t.field.Unmount()
	if err := t.mount(); err != nil {
		t.status = err.Error()
		return
	}
	t.status = "applied"
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "tuned.yaml", "Where Save writes the tuned config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Field Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	t := &tuner{
		cfg:     cfg,
		base:    cfg.Field,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		surface: renderer.NewFieldSurface(cfg.Field.Palette.BackgroundRGB),
		events:  field.NewDispatcher(),
		pump:    field.NewFramePump(),
	}
	if err := t.mount(); err != nil {
		slog.Error("failed to mount field", "error", err)
		return
	}
	defer func() { t.field.Unmount() }()

	dirty := false
	var lastMouse rl.Vector2

	for !rl.WindowShouldClose() {
		// Pointer input only counts inside the preview
		mouse := rl.GetMousePosition()
		if mouse.X < previewW {
			if mouse != lastMouse {
				t.events.PointerMove(mouse.X, mouse.Y)
			}
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				t.events.Click(mouse.X, mouse.Y)
			}
		}
		lastMouse = mouse

		t.pump.Pump()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		t.surface.Draw()

		snap := t.field.Snapshot()
		rl.DrawText(fmt.Sprintf("ambient %d  bursts %d  ripples %d  clicks %d", snap.Ambient, snap.Bursts, snap.Ripples, snap.Clicks),
			10, windowHeight-24, 16, rl.Gray)

		// Control panel
		panelX := float32(previewW + 15)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get(&cfg.Field)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&cfg.Field, next)
				dirty = true
			}
			panelY += 32
		}
		panelY += 10

		// Buttons
		applyText := "Apply"
		if dirty {
			applyText = "Apply *"
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, applyText) {
			t.apply()
			dirty = false
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Reset") {
			cfg.Field = t.base
			t.apply()
			dirty = false
		}
		if gui.Button(rl.Rectangle{X: panelX + 220, Y: panelY, Width: 100, Height: 30}, "Save") {
			if err := cfg.WriteYAML(*outPath); err != nil {
				t.status = err.Error()
			} else {
				t.status = "saved " + *outPath
				slog.Info("tuned config saved", "path", *outPath)
			}
		}
		panelY += 45

		if t.status != "" {
			rl.DrawText(t.status, int32(panelX), int32(panelY), 12, rl.DarkGray)
		}

		rl.EndDrawing()
	}
}
