package analytics

import "testing"

func TestRiskScore(t *testing.T) {
	tests := []struct {
		probability, impact, want int
	}{
		{1, 1, 1},
		{5, 5, 25},
		{5, 4, 20},
		{3, 3, 9},
		{2, 4, 8},
		{1, 5, 5},
	}

	for _, tt := range tests {
		if got := RiskScore(tt.probability, tt.impact); got != tt.want {
			t.Errorf("RiskScore(%d, %d) = %d, want %d", tt.probability, tt.impact, got, tt.want)
		}
	}
}

func TestRiskScoreBounds(t *testing.T) {
	for p := 1; p <= 5; p++ {
		for i := 1; i <= 5; i++ {
			score := RiskScore(p, i)
			if score < 1 || score > 25 {
				t.Errorf("RiskScore(%d, %d) = %d out of [1,25]", p, i, score)
			}
		}
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		score int
		want  RiskBand
	}{
		{25, RiskHigh},
		{20, RiskHigh}, // probability 5 x impact 4
		{15, RiskHigh},
		{14, RiskMedium},
		{8, RiskMedium},
		{7, RiskLow},
		{1, RiskLow},
	}

	for _, tt := range tests {
		if got := ClassifyRisk(tt.score); got != tt.want {
			t.Errorf("ClassifyRisk(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestValidRiskInput(t *testing.T) {
	tests := []struct {
		probability, impact int
		want                bool
	}{
		{1, 1, true},
		{5, 5, true},
		{0, 3, false},
		{3, 0, false},
		{6, 1, false},
		{1, 6, false},
	}

	for _, tt := range tests {
		if got := ValidRiskInput(tt.probability, tt.impact); got != tt.want {
			t.Errorf("ValidRiskInput(%d, %d) = %v, want %v", tt.probability, tt.impact, got, tt.want)
		}
	}
}
