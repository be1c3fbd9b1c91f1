// Package field implements the interactive particle field: a drifting ambient
// population that shies away from the pointer, plus bursts and ripples
// spawned by clicks.
package field

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/cyberlaughs/config"
	"github.com/pthm-cable/cyberlaughs/systems"
	"github.com/pthm-cable/cyberlaughs/telemetry"
)

// Options carries the collaborators a Field is wired to.
type Options struct {
	// Surface is required for Mount.
	Surface Surface
	// Events, when set, is subscribed to on Mount and released on Unmount.
	Events EventSource
	// Scheduler, when set, drives Tick once per frame while mounted.
	Scheduler Scheduler
	// Rand seeds the field. Nil means a time-seeded source.
	Rand   *rand.Rand
	Logger *slog.Logger
	Perf   PhaseRecorder
	// OnError receives errors raised inside scheduled frames and event handlers.
	OnError func(error)
}

type state uint8

const (
	stateIdle state = iota
	stateMounted
	stateLost
	stateUnmounted
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateMounted:
		return "mounted"
	case stateLost:
		return "lost"
	case stateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of a field's populations and counters.
// Counters restart on every Mount.
type Snapshot struct {
	Mounted bool
	Width   int
	Height  int

	Ambient int
	Bursts  int
	Ripples int

	Frames         uint64
	Clicks         uint64
	BurstsSpawned  uint64
	BurstsExpired  uint64
	RipplesSpawned uint64
	RipplesExpired uint64
}

// Field is one particle field bound to a surface. All methods are safe for
// concurrent use.
type Field struct {
	mu sync.Mutex

	cfg       config.FieldConfig
	surface   Surface
	events    EventSource
	scheduler Scheduler
	rng       *rand.Rand
	log       *slog.Logger
	perf      PhaseRecorder
	onError   func(error)

	state   state
	width   int
	height  int
	bounds  systems.Bounds
	pointer systems.Pointer

	ambient *systems.AmbientSystem
	bursts  *systems.BurstSystem
	ripples *systems.RippleSystem
	cursor  *systems.CursorSystem

	sub         Subscription
	cancelFrame func()

	frames uint64
	clicks uint64
}

// New creates an unmounted field.
func New(cfg config.FieldConfig, opts Options) *Field {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var perf PhaseRecorder = noopRecorder{}
	if opts.Perf != nil {
		perf = opts.Perf
	}

	return &Field{
		cfg:       cfg,
		surface:   opts.Surface,
		events:    opts.Events,
		scheduler: opts.Scheduler,
		rng:       rng,
		log:       logger.With("component", "field"),
		perf:      perf,
		onError:   opts.OnError,
	}
}

// Mount acquires the surface, seeds the ambient population and starts the
// frame loop. A lost or unmounted field may be mounted again; it starts
// from a fresh population.
func (f *Field) Mount(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == stateMounted {
		return ErrAlreadyMounted
	}
	if f.surface == nil {
		return ErrNoSurface
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	if f.state == stateLost {
		f.teardownLocked()
	}

	if err := f.surface.Acquire(width, height); err != nil {
		return fmt.Errorf("%w: %w", ErrNoSurface, err)
	}

	f.width, f.height = width, height
	f.bounds = systems.Bounds{Width: float32(width), Height: float32(height)}
	f.pointer = systems.Pointer{}
	f.frames, f.clicks = 0, 0

	f.ambient = systems.NewAmbientSystem(f.cfg.Ambient, f.cfg.Repulsion)
	f.ambient.Seed(f.cfg.Ambient.Count, f.bounds, f.rng)
	f.bursts = systems.NewBurstSystem(f.cfg.Burst)
	f.ripples = systems.NewRippleSystem(f.cfg.Ripple)
	f.cursor = systems.NewCursorSystem(f.cfg.Cursor)

	f.state = stateMounted
	if f.events != nil {
		f.sub = f.events.Subscribe(fieldHandler{f})
	}
	f.scheduleLocked()

	f.log.Info("mounted", "width", width, "height", height, "ambient", f.ambient.Count())
	return nil
}

// Unmount stops the frame loop, detaches from events and releases the
// surface. It is a no-op on a field that is not mounted or lost.
func (f *Field) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != stateMounted && f.state != stateLost {
		return
	}
	f.teardownLocked()
	f.state = stateUnmounted
	f.log.Info("unmounted", "frames", f.frames, "clicks", f.clicks)
}

// OnPointerMove records the latest pointer position. Events that arrive
// while unmounted are ignored.
func (f *Field) OnPointerMove(x, y float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateMounted {
		return
	}
	f.pointer = systems.Pointer{X: x, Y: y, Valid: true}
}

// OnClick spawns ripples and a burst at (x, y). Clicks outside the viewport
// still spawn; bursts are not wrapped.
func (f *Field) OnClick(x, y float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateMounted {
		return
	}
	f.clicks++
	f.ripples.Emit(x, y, f.rng)
	f.bursts.Emit(x, y, f.rng)
}

// OnResize resizes the surface and the wrap bounds. Existing particles keep
// their positions; motes left outside the new bounds wrap on the next tick.
func (f *Field) OnResize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateMounted {
		return ErrNotMounted
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, width, height)
	}
	if width == f.width && height == f.height {
		return nil
	}

	if err := f.surface.Resize(width, height); err != nil {
		err = lostError(err)
		f.loseLocked(err)
		return err
	}
	f.width, f.height = width, height
	f.bounds = systems.Bounds{Width: float32(width), Height: float32(height)}

	f.log.Debug("resized", "width", width, "height", height)
	return nil
}

// Tick advances and draws one frame. Hosts without a Scheduler call it once
// per display refresh.
func (f *Field) Tick() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateMounted {
		return ErrNotMounted
	}
	if err := f.tickLocked(); err != nil {
		f.loseLocked(err)
		return err
	}
	return nil
}

// Snapshot returns the current populations and counters.
func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Mounted: f.state == stateMounted,
		Width:   f.width,
		Height:  f.height,
		Frames:  f.frames,
		Clicks:  f.clicks,
	}
	if f.ambient != nil {
		s.Ambient = f.ambient.Count()
	}
	if f.bursts != nil {
		s.Bursts = f.bursts.Count()
		s.BurstsSpawned = f.bursts.Spawned()
		s.BurstsExpired = f.bursts.Expired()
	}
	if f.ripples != nil {
		s.Ripples = f.ripples.Count()
		s.RipplesSpawned = f.ripples.Spawned()
		s.RipplesExpired = f.ripples.Expired()
	}
	return s
}

func (f *Field) tickLocked() error {
	if err := f.surface.Begin(); err != nil {
		return lostError(err)
	}

	f.perf.StartTick()

	f.perf.StartPhase(telemetry.PhaseAmbient)
	f.ambient.Update(f.pointer, f.bounds)

	f.perf.StartPhase(telemetry.PhaseBursts)
	f.bursts.Update()

	f.perf.StartPhase(telemetry.PhaseRipples)
	f.ripples.Update()

	f.perf.StartPhase(telemetry.PhaseCursor)
	f.cursor.Update(f.pointer)

	f.perf.StartPhase(telemetry.PhaseDraw)
	f.drawLocked()
	f.surface.End()

	f.perf.EndTick()

	f.frames++
	return nil
}

// frame is the Scheduler callback. It reschedules itself while mounted.
func (f *Field) frame() {
	f.mu.Lock()
	if f.state != stateMounted {
		f.mu.Unlock()
		return
	}
	f.cancelFrame = nil

	err := f.tickLocked()
	if err != nil {
		f.loseLocked(err)
	} else {
		f.scheduleLocked()
	}
	onError := f.onError
	f.mu.Unlock()

	if err != nil && onError != nil {
		onError(err)
	}
}

func (f *Field) scheduleLocked() {
	if f.scheduler == nil {
		return
	}
	f.cancelFrame = f.scheduler.RequestFrame(f.frame)
}

// loseLocked stops the frame loop after a surface failure. The surface and
// subscription are kept until Unmount or the next Mount.
func (f *Field) loseLocked(err error) {
	if f.cancelFrame != nil {
		f.cancelFrame()
		f.cancelFrame = nil
	}
	f.state = stateLost
	f.log.Error("surface lost", "error", err, "frames", f.frames)
}

func (f *Field) teardownLocked() {
	if f.cancelFrame != nil {
		f.cancelFrame()
		f.cancelFrame = nil
	}
	if f.sub != nil {
		f.sub.Unsubscribe()
		f.sub = nil
	}
	f.surface.Release()
}

func (f *Field) reportError(err error) {
	f.mu.Lock()
	onError := f.onError
	f.mu.Unlock()
	if onError != nil {
		onError(err)
	}
}

func lostError(err error) error {
	if errors.Is(err, ErrSurfaceLost) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
}

// fieldHandler adapts a Field to the Handler interface.
type fieldHandler struct {
	f *Field
}

func (h fieldHandler) PointerMove(x, y float32) { h.f.OnPointerMove(x, y) }

func (h fieldHandler) Click(x, y float32) { h.f.OnClick(x, y) }

func (h fieldHandler) Resize(width, height int) {
	if err := h.f.OnResize(width, height); err != nil && !errors.Is(err, ErrNotMounted) {
		h.f.reportError(err)
	}
}
