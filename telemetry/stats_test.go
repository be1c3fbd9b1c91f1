package telemetry

import (
	"math"
	"testing"
)

func TestComputeSeriesStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   SeriesStats
	}{
		{"empty", nil, SeriesStats{}},
		{"single", []float64{12}, SeriesStats{Mean: 12, P50: 12, Peak: 12}},
		{"constant", []float64{2, 2, 2, 2}, SeriesStats{Mean: 2, Std: 0, P50: 2, Peak: 2}},
		// sample std of 0,12,24 is 12
		{"spread", []float64{24, 0, 12}, SeriesStats{Mean: 12, Std: 12, P50: 12, Peak: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSeriesStats(tt.values)
			if !near(got.Mean, tt.want.Mean) || !near(got.Std, tt.want.Std) ||
				!near(got.P50, tt.want.P50) || !near(got.Peak, tt.want.Peak) {
				t.Errorf("ComputeSeriesStats(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestComputeSeriesStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeSeriesStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
