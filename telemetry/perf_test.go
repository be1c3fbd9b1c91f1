package telemetry

import (
	"testing"
	"time"
)

// runFrames drives pc through n frames touching every phase.
func runFrames(pc *PerfCollector, n int, drawSleep time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartTick()
		for _, phase := range Phases {
			pc.StartPhase(phase)
			if phase == PhaseDraw {
				time.Sleep(drawSleep)
			}
		}
		pc.EndTick()
	}
}

func TestPerfCollectorTracksEveryPhase(t *testing.T) {
	pc := NewPerfCollector(10)
	runFrames(pc, 5, 100*time.Microsecond)

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Fatal("expected positive average tick duration")
	}
	for _, phase := range Phases {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %q not tracked", phase)
		}
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max out of order: %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorDrawDominates(t *testing.T) {
	pc := NewPerfCollector(10)
	runFrames(pc, 5, time.Millisecond)

	stats := pc.Stats()
	draw := stats.PhasePct[PhaseDraw]
	for _, phase := range Phases[:len(Phases)-1] {
		if stats.PhasePct[phase] >= draw {
			t.Errorf("phase %s (%v%%) not below draw (%v%%)", phase, stats.PhasePct[phase], draw)
		}
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	pc := NewPerfCollector(3)
	runFrames(pc, 10, 0)

	if pc.count != 3 {
		t.Errorf("count = %d, want window size 3", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollectorFPS(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 20*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 20ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 50 {
		t.Errorf("fps = %v, want in (0, 50]", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseAmbient: 40,
			PhaseDraw:    55,
		},
	}
	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("unexpected row header fields: %+v", row)
	}
	if row.AmbientPct != 40 || row.DrawPct != 55 || row.BurstsPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}
