package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/cyberlaughs/config"
)

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	config.MustInit("")
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	snapDir := filepath.Join(dir, "frames")
	outDir := filepath.Join(dir, "out")

	g := newHeadless(t, Options{
		Seed:           7,
		StatsWindowSec: 1,
		OutputDir:      outDir,
		StepsPerUpdate: 10,
		ClickEvery:     40,
		SnapshotDir:    snapDir,
		SnapshotEvery:  30,
	})

	for i := 0; i < 12; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 120 {
		t.Fatalf("tick = %d, want 120", g.Tick())
	}

	snap := g.Snapshot()
	if !snap.Mounted {
		t.Fatal("field should still be mounted")
	}
	if snap.Frames != 120 {
		t.Errorf("frames = %d, want 120", snap.Frames)
	}
	// Clicks land on ticks 0, 40 and 80
	if snap.Clicks != 3 {
		t.Errorf("clicks = %d, want 3", snap.Clicks)
	}
	if snap.Ambient != 80 {
		t.Errorf("ambient = %d, want 80", snap.Ambient)
	}
	if snap.BurstsSpawned != 36 {
		t.Errorf("bursts spawned = %d, want 36", snap.BurstsSpawned)
	}

	pngs, err := filepath.Glob(filepath.Join(snapDir, "frame_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pngs) != 4 {
		t.Errorf("snapshots = %d, want 4: %v", len(pngs), pngs)
	}
}

func TestHeadlessWritesTelemetry(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	g := newHeadless(t, Options{
		Seed:           1,
		StatsWindowSec: 1,
		OutputDir:      outDir,
		StepsPerUpdate: 120,
		ClickEvery:     20,
	})
	g.UpdateHeadless()
	g.Unload()

	data, err := os.ReadFile(filepath.Join(outDir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per one-second window
	if len(lines) != 3 {
		t.Fatalf("telemetry lines = %d, want 3:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}

	if _, err := os.Stat(filepath.Join(outDir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestSetVariantRemounts(t *testing.T) {
	g := newHeadless(t, Options{Seed: 3, StepsPerUpdate: 5, ClickEvery: 1})
	g.UpdateHeadless()

	if err := g.SetVariant("neon"); err != nil {
		t.Fatalf("SetVariant(neon): %v", err)
	}
	snap := g.Snapshot()
	if snap.Ambient != 120 {
		t.Errorf("ambient = %d, want 120", snap.Ambient)
	}
	if snap.Bursts != 0 || snap.Ripples != 0 || snap.Clicks != 0 {
		t.Errorf("remount should start empty, got %+v", snap)
	}

	// Switching back drops the neon overlay entirely
	if err := g.SetVariant("ember"); err != nil {
		t.Fatalf("SetVariant(ember): %v", err)
	}
	if got := g.Snapshot().Ambient; got != 100 {
		t.Errorf("ambient = %d, want 100", got)
	}
	if got := g.cfg.Field.Burst.Count; got != 16 {
		t.Errorf("burst count = %d, want 16", got)
	}
	if got := g.cfg.Field.Ripple.PerClick; got != 2 {
		t.Errorf("ripples per click = %d, want 2 after leaving neon", got)
	}

	if err := g.SetVariant("plaid"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestStartVariant(t *testing.T) {
	g := newHeadless(t, Options{Seed: 5, Variant: "ember"})
	if got := g.Snapshot().Ambient; got != 100 {
		t.Errorf("ambient = %d, want 100", got)
	}
	if g.cfg.Derived.Variant != "ember" {
		t.Errorf("variant = %q, want ember", g.cfg.Derived.Variant)
	}
}

func TestStartUnknownVariant(t *testing.T) {
	config.MustInit("")
	if _, err := NewGameWithOptions(Options{Headless: true, Variant: "plaid"}); err == nil {
		t.Error("expected error for unknown variant")
	}
}
