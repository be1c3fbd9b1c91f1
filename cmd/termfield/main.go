// Command termfield runs the particle field in a terminal. Each character
// cell stands for a block of pixels; mouse motion and clicks drive the
// field the same way they do in the window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/field"
	"github.com/pthm-cable/cyberlaughs/raster"
)

const (
	cellW = 8
	cellH = 16
)

// ramp maps cell coverage to a glyph, faintest first.
var ramp = []rune(" .:+*o%@")

type app struct {
	screen tcell.Screen
	cfg    *config.Config
	base   config.FieldConfig
	rng    *rand.Rand

	grid   *raster.Grid
	events *field.Dispatcher
	pump   *field.FramePump
	field  *field.Field

	variants   []string
	variantIdx int
	buttonDown bool
	lost       error
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Named field variant to start with")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	base := cfg.Field
	if err := cfg.ApplyVariant(*variant); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply variant: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	a := &app{
		screen:   screen,
		cfg:      cfg,
		base:     base,
		rng:      rand.New(rand.NewSource(rngSeed)),
		grid:     raster.NewGrid(cellW, cellH),
		events:   field.NewDispatcher(),
		pump:     field.NewFramePump(),
		variants: cfg.VariantNames(),
	}
	for i, name := range a.variants {
		if name == cfg.Derived.Variant {
			a.variantIdx = i
		}
	}

	if err := a.mount(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to mount field: %v\n", err)
		os.Exit(1)
	}

	a.run()
	a.field.Unmount()
	screen.Fini()
}

// mount builds a field over the current config sized to the terminal.
func (a *app) mount() error {
	cols, rows := a.screen.Size()
	a.field = field.New(a.cfg.Field, field.Options{
		Surface:   a.grid,
		Events:    a.events,
		Scheduler: a.pump,
		Rand:      a.rng,
		Logger:    slog.Default(),
		OnError:   func(err error) { a.lost = err },
	})
	a.lost = nil
	return a.field.Mount(cols*cellW, rows*cellH)
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if a.lost != nil {
				slog.Warn("remounting field", "cause", a.lost)
				a.field.Unmount()
				if err := a.mount(); err != nil {
					slog.Error("remount failed", "error", err)
					return
				}
			}
			a.pump.Pump()
			a.draw()
		}
	}
}

// pollEvents forwards events from poll until poll returns nil or done is
// closed, so the poller never blocks on a loop that has stopped reading.
func pollEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'v':
				a.cycleVariant()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x := float32(col*cellW + cellW/2)
		y := float32(row*cellH + cellH/2)
		a.events.PointerMove(x, y)

		// Click on press, not while held
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.buttonDown {
			a.events.Click(x, y)
		}
		a.buttonDown = down

	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.events.Resize(cols*cellW, rows*cellH)
		a.screen.Sync()
	}
	return true
}

func (a *app) cycleVariant() {
	if len(a.variants) == 0 {
		return
	}
	a.variantIdx = (a.variantIdx + 1) % len(a.variants)
	name := a.variants[a.variantIdx]

	a.cfg.Field = a.base
	if err := a.cfg.ApplyVariant(name); err != nil {
		slog.Error("failed to apply variant", "variant", name, "error", err)
		return
	}
	a.field.Unmount()
	if err := a.mount(); err != nil {
		slog.Error("failed to mount variant", "variant", name, "error", err)
	}
}

func (a *app) draw() {
	bg := a.cfg.Field.Palette.BackgroundRGB
	bgStyle := tcell.StyleDefault.Background(tcellColor(bg))

	cols, rows := a.grid.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c, cov := a.grid.Cell(col, row)
			if cov <= 0 {
				a.screen.SetContent(col, row, ' ', nil, bgStyle)
				continue
			}
			glyph := ramp[min(int(cov*float32(len(ramp))), len(ramp)-1)]
			if glyph == ' ' {
				glyph = ramp[1]
			}
			fg := config.Blend(bg, c, float64(min(cov*2, 1)))
			a.screen.SetContent(col, row, glyph, nil, bgStyle.Foreground(tcellColor(fg)))
		}
	}

	snap := a.field.Snapshot()
	status := fmt.Sprintf(" %s  bursts %d  ripples %d  [v] variant  [q] quit ", a.cfg.Derived.Variant, snap.Bursts, snap.Ripples)
	statusStyle := bgStyle.Foreground(tcell.ColorGray)
	for i, r := range status {
		if i >= cols {
			break
		}
		a.screen.SetContent(i, rows-1, r, nil, statusStyle)
	}

	a.screen.Show()
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
