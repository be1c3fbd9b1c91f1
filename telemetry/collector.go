package telemetry

import "math"

// Sample is one tick's view of a particle field. Counters are cumulative
// since the field was last mounted.
type Sample struct {
	Ambient int
	Bursts  int
	Ripples int

	Clicks         uint64
	BurstsSpawned  uint64
	BurstsExpired  uint64
	RipplesSpawned uint64
	RipplesExpired uint64
}

// Collector accumulates samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32
	variant             string

	// Current window tracking
	windowStartTick int32
	windowStart     Sample
	last            Sample
	burstSeries     []float64
	rippleSeries    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		burstSeries:         make([]float64, 0, ticksPerWindow),
		rippleSeries:        make([]float64, 0, ticksPerWindow),
	}
}

// SetVariant labels subsequent windows with a variant name.
func (c *Collector) SetVariant(name string) {
	c.variant = name
}

// Record adds one tick's sample to the current window.
func (c *Collector) Record(s Sample) {
	// A remount restarts the field's counters; rebase so deltas stay positive
	if s.Clicks < c.last.Clicks || s.BurstsSpawned < c.last.BurstsSpawned || s.RipplesSpawned < c.last.RipplesSpawned ||
		s.BurstsExpired < c.last.BurstsExpired || s.RipplesExpired < c.last.RipplesExpired {
		c.windowStart = rebase(c.windowStart, c.last)
	}
	c.last = s
	c.burstSeries = append(c.burstSeries, float64(s.Bursts))
	c.rippleSeries = append(c.rippleSeries, float64(s.Ripples))
}

// rebase shifts start so that counters measured after a reset continue from
// the totals reached before it.
func rebase(start, before Sample) Sample {
	return Sample{
		Clicks:         start.Clicks - before.Clicks,
		BurstsSpawned:  start.BurstsSpawned - before.BurstsSpawned,
		BurstsExpired:  start.BurstsExpired - before.BurstsExpired,
		RipplesSpawned: start.RipplesSpawned - before.RipplesSpawned,
		RipplesExpired: start.RipplesExpired - before.RipplesExpired,
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int32) WindowStats {
	bursts := ComputeSeriesStats(c.burstSeries)
	ripples := ComputeSeriesStats(c.rippleSeries)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		Variant:         c.variant,

		Ambient: c.last.Ambient,
		Bursts:  c.last.Bursts,
		Ripples: c.last.Ripples,

		Clicks:         int(c.last.Clicks - c.windowStart.Clicks),
		BurstsSpawned:  int(c.last.BurstsSpawned - c.windowStart.BurstsSpawned),
		BurstsExpired:  int(c.last.BurstsExpired - c.windowStart.BurstsExpired),
		RipplesSpawned: int(c.last.RipplesSpawned - c.windowStart.RipplesSpawned),
		RipplesExpired: int(c.last.RipplesExpired - c.windowStart.RipplesExpired),

		BurstsMean: bursts.Mean,
		BurstsStd:  bursts.Std,
		BurstsP50:  bursts.P50,
		BurstsPeak: bursts.Peak,

		RipplesMean: ripples.Mean,
		RipplesStd:  ripples.Std,
		RipplesPeak: ripples.Peak,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowStart = c.last
	c.burstSeries = c.burstSeries[:0]
	c.rippleSeries = c.rippleSeries[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
