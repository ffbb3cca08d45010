package analytics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name             string
		pv, ev, ac, bac  float64
		cpi, spi, cv, sv float64
		eac              float64
	}{
		{
			name: "behind schedule and over cost",
			pv:   1000, ev: 900, ac: 950, bac: 5000,
			cpi: 900.0 / 950.0, spi: 0.9, cv: -50, sv: -100,
			eac: 5000 / (900.0 / 950.0),
		},
		{
			name: "on plan",
			pv:   1000, ev: 1000, ac: 1000, bac: 4000,
			cpi: 1, spi: 1, cv: 0, sv: 0, eac: 4000,
		},
		{
			name: "zero actual cost yields CPI 1",
			pv:   500, ev: 250, ac: 0, bac: 2000,
			cpi: 1, spi: 0.5, cv: 250, sv: -250, eac: 2000,
		},
		{
			name: "zero planned value yields SPI 1",
			pv:   0, ev: 400, ac: 500, bac: 2000,
			cpi: 0.8, spi: 1, cv: -100, sv: 400, eac: 2500,
		},
		{
			name: "all zero",
			pv:   0, ev: 0, ac: 0, bac: 3000,
			cpi: 1, spi: 1, cv: 0, sv: 0, eac: 3000,
		},
		{
			name: "zero CPI falls back to BAC",
			pv:   100, ev: 0, ac: 50, bac: 1000,
			cpi: 0, spi: 0, cv: -50, sv: -100, eac: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(tt.pv, tt.ev, tt.ac, tt.bac)
			if !almostEqual(m.CostPerformanceIndex, tt.cpi) {
				t.Errorf("CPI = %v, want %v", m.CostPerformanceIndex, tt.cpi)
			}
			if !almostEqual(m.SchedulePerformanceIndex, tt.spi) {
				t.Errorf("SPI = %v, want %v", m.SchedulePerformanceIndex, tt.spi)
			}
			if !almostEqual(m.CostVariance, tt.cv) {
				t.Errorf("CV = %v, want %v", m.CostVariance, tt.cv)
			}
			if !almostEqual(m.ScheduleVariance, tt.sv) {
				t.Errorf("SV = %v, want %v", m.ScheduleVariance, tt.sv)
			}
			if !almostEqual(m.EstimateAtCompletion, tt.eac) {
				t.Errorf("EAC = %v, want %v", m.EstimateAtCompletion, tt.eac)
			}
		})
	}
}

func TestComputeMetricsReferenceExample(t *testing.T) {
	// PV=1000, EV=900, AC=950, BAC=5000 is the documented reference case.
	m := ComputeMetrics(1000, 900, 950, 5000)

	if math.Abs(m.CostPerformanceIndex-0.947) > 0.001 {
		t.Errorf("CPI = %v, want ~0.947", m.CostPerformanceIndex)
	}
	if !almostEqual(m.SchedulePerformanceIndex, 0.9) {
		t.Errorf("SPI = %v, want 0.9", m.SchedulePerformanceIndex)
	}
	if math.Abs(m.EstimateAtCompletion-5278) > 1 {
		t.Errorf("EAC = %v, want ~5278", m.EstimateAtCompletion)
	}
}

func TestClassifyStatus(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		cpi, spi float64
		want     HealthStatus
	}{
		{"both healthy", 1.0, 1.0, StatusOnTrack},
		{"both at the on-track bar", 0.95, 0.95, StatusOnTrack},
		{"cpi below the bar", 0.94, 1.0, StatusAtRisk},
		{"spi below the bar", 1.1, 0.90, StatusAtRisk},
		{"both at the at-risk floor", 0.85, 0.85, StatusAtRisk},
		{"cpi critical", 0.84, 1.0, StatusCritical},
		{"spi critical", 1.0, 0.5, StatusCritical},
		{"both critical", 0.1, 0.1, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStatus(tt.cpi, tt.spi, th); got != tt.want {
				t.Errorf("ClassifyStatus(%v, %v) = %v, want %v", tt.cpi, tt.spi, got, tt.want)
			}
		})
	}
}

func TestClassifyStatusCustomThresholds(t *testing.T) {
	th := Thresholds{OnTrack: 0.9, AtRisk: 0.7}

	if got := ClassifyStatus(0.92, 0.91, th); got != StatusOnTrack {
		t.Errorf("got %v, want %v", got, StatusOnTrack)
	}
	if got := ClassifyStatus(0.75, 0.95, th); got != StatusAtRisk {
		t.Errorf("got %v, want %v", got, StatusAtRisk)
	}
	if got := ClassifyStatus(0.69, 0.95, th); got != StatusCritical {
		t.Errorf("got %v, want %v", got, StatusCritical)
	}
}
