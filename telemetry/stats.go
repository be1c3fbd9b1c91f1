package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Variant         string  `csv:"variant"`

	// Population at window end
	Ambient int `csv:"ambient"`
	Bursts  int `csv:"bursts"`
	Ripples int `csv:"ripples"`

	// Events during window
	Clicks         int `csv:"clicks"`
	BurstsSpawned  int `csv:"bursts_spawned"`
	BurstsExpired  int `csv:"bursts_expired"`
	RipplesSpawned int `csv:"ripples_spawned"`
	RipplesExpired int `csv:"ripples_expired"`

	// Live burst particles sampled every tick
	BurstsMean float64 `csv:"bursts_mean"`
	BurstsStd  float64 `csv:"bursts_std"`
	BurstsP50  float64 `csv:"bursts_p50"`
	BurstsPeak float64 `csv:"bursts_peak"`

	// Live ripples sampled every tick
	RipplesMean float64 `csv:"ripples_mean"`
	RipplesStd  float64 `csv:"ripples_std"`
	RipplesPeak float64 `csv:"ripples_peak"`
}

// SeriesStats summarises a per-tick series.
type SeriesStats struct {
	Mean, Std, P50, Peak float64
}

// ComputeSeriesStats calculates mean, sample standard deviation, median and
// peak. An empty series yields zeros; a single value has zero deviation.
func ComputeSeriesStats(values []float64) SeriesStats {
	n := len(values)
	if n == 0 {
		return SeriesStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s SeriesStats
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Peak = floats.Max(sorted)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("variant", s.Variant),
		slog.Int("ambient", s.Ambient),
		slog.Int("bursts", s.Bursts),
		slog.Int("ripples", s.Ripples),
		slog.Int("clicks", s.Clicks),
		slog.Int("bursts_spawned", s.BurstsSpawned),
		slog.Int("bursts_expired", s.BurstsExpired),
		slog.Int("ripples_spawned", s.RipplesSpawned),
		slog.Int("ripples_expired", s.RipplesExpired),
		slog.Float64("bursts_mean", s.BurstsMean),
		slog.Float64("bursts_std", s.BurstsStd),
		slog.Float64("bursts_p50", s.BurstsP50),
		slog.Float64("bursts_peak", s.BurstsPeak),
		slog.Float64("ripples_mean", s.RipplesMean),
		slog.Float64("ripples_std", s.RipplesStd),
		slog.Float64("ripples_peak", s.RipplesPeak),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"variant", s.Variant,
		"ambient", s.Ambient,
		"bursts", s.Bursts,
		"ripples", s.Ripples,
		"clicks", s.Clicks,
		"bursts_spawned", s.BurstsSpawned,
		"bursts_expired", s.BurstsExpired,
		"ripples_spawned", s.RipplesSpawned,
		"ripples_expired", s.RipplesExpired,
		"bursts_mean", s.BurstsMean,
		"bursts_peak", s.BurstsPeak,
		"ripples_mean", s.RipplesMean,
		"ripples_peak", s.RipplesPeak,
	)
}
