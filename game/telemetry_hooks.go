package game

import (
	"log/slog"

	"github.com/pthm-cable/cyberlaughs/field"
	"github.com/pthm-cable/cyberlaughs/telemetry"
)

// sampleOf converts a field snapshot into a telemetry sample.
func sampleOf(s field.Snapshot) telemetry.Sample {
	return telemetry.Sample{
		Ambient:        s.Ambient,
		Bursts:         s.Bursts,
		Ripples:        s.Ripples,
		Clicks:         s.Clicks,
		BurstsSpawned:  s.BurstsSpawned,
		BurstsExpired:  s.BurstsExpired,
		RipplesSpawned: s.RipplesSpawned,
		RipplesExpired: s.RipplesExpired,
	}
}

// recordTelemetry samples the field and flushes the stats window when due.
func (g *Game) recordTelemetry() {
	g.collector.Record(sampleOf(g.field.Snapshot()))

	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick)
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
