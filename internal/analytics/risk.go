package analytics

// RiskBand is the color band a risk score falls into.
type RiskBand string

const (
	RiskLow    RiskBand = "low"    // green
	RiskMedium RiskBand = "medium" // amber
	RiskHigh   RiskBand = "high"   // red
)

// Band thresholds match what the dashboard documents.
const (
	riskHighFloor   = 15
	riskMediumFloor = 8
)

// RiskScore multiplies a 1-5 probability by a 1-5 impact, giving 1-25.
func RiskScore(probability, impact int) int {
	return probability * impact
}

// ClassifyRisk maps a score to its band: >=15 high, >=8 medium, else low.
func ClassifyRisk(score int) RiskBand {
	switch {
	case score >= riskHighFloor:
		return RiskHigh
	case score >= riskMediumFloor:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ValidRiskInput reports whether probability and impact are in the 1-5 range.
func ValidRiskInput(probability, impact int) bool {
	return probability >= 1 && probability <= 5 && impact >= 1 && impact <= 5
}
