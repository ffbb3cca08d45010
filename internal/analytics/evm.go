// Package analytics holds the pure computation layer behind the dashboard:
// earned value metrics, capacity heatmaps and risk scoring. Everything here
// is a side-effect-free projection over already-fetched rows.
package analytics

// Metrics is one earned-value snapshot for a project.
type Metrics struct {
	PlannedValue             float64 `json:"planned_value"`
	EarnedValue              float64 `json:"earned_value"`
	ActualCost               float64 `json:"actual_cost"`
	CostPerformanceIndex     float64 `json:"cost_performance_index"`
	SchedulePerformanceIndex float64 `json:"schedule_performance_index"`
	CostVariance             float64 `json:"cost_variance"`
	ScheduleVariance         float64 `json:"schedule_variance"`
	EstimateAtCompletion     float64 `json:"estimate_at_completion"`
}

// ComputeMetrics derives the EVM indices from planned value, earned value,
// actual cost and budget at completion. Divisions are guarded: CPI and SPI
// default to 1 when their denominator is 0, and EAC falls back to BAC when
// CPI is 0.
func ComputeMetrics(pv, ev, ac, bac float64) Metrics {
	m := Metrics{
		PlannedValue: pv,
		EarnedValue:  ev,
		ActualCost:   ac,
	}

	if ac == 0 {
		m.CostPerformanceIndex = 1
	} else {
		m.CostPerformanceIndex = ev / ac
	}

	if pv == 0 {
		m.SchedulePerformanceIndex = 1
	} else {
		m.SchedulePerformanceIndex = ev / pv
	}

	m.CostVariance = ev - ac
	m.ScheduleVariance = ev - pv

	if m.CostPerformanceIndex == 0 {
		m.EstimateAtCompletion = bac
	} else {
		m.EstimateAtCompletion = bac / m.CostPerformanceIndex
	}

	return m
}

// HealthStatus is the discrete project health bucket derived from CPI/SPI.
type HealthStatus string

const (
	StatusOnTrack  HealthStatus = "on_track"
	StatusAtRisk   HealthStatus = "at_risk"
	StatusCritical HealthStatus = "critical"
)

// Thresholds are the classifier cut points. They are configuration, not a
// derived law; DefaultThresholds matches what the dashboard documents.
type Thresholds struct {
	OnTrack float64 `yaml:"on_track"` // both indices at or above: on_track
	AtRisk  float64 `yaml:"at_risk"`  // either index below: critical
}

// DefaultThresholds returns the standard 0.95/0.85 cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{OnTrack: 0.95, AtRisk: 0.85}
}

// ClassifyStatus buckets a CPI/SPI pair: critical if either index is below
// the at-risk floor, on_track if both clear the on-track bar, at_risk
// otherwise.
func ClassifyStatus(cpi, spi float64, t Thresholds) HealthStatus {
	if cpi < t.AtRisk || spi < t.AtRisk {
		return StatusCritical
	}
	if cpi >= t.OnTrack && spi >= t.OnTrack {
		return StatusOnTrack
	}
	return StatusAtRisk
}
