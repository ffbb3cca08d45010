package model

import "time"

// RAIDEntry is one row of a project's risks/assumptions/issues/dependencies
// log. Probability, impact and score are meaningful for risks only. Status
// values are free-form user-set labels with no enforced ordering.
type RAIDEntry struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Type        string    `json:"type"` // risk / assumption / issue / dependency
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // identified / analyzed / mitigating / resolved / closed
	Owner       string    `json:"owner"`
	Probability int       `json:"probability,omitempty"` // 1-5, risks only
	Impact      int       `json:"impact,omitempty"`      // 1-5, risks only
	Score       int       `json:"score,omitempty"`       // probability * impact
	Band        string    `json:"band,omitempty"`        // low / medium / high
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	RAIDTypeRisk       = "risk"
	RAIDTypeAssumption = "assumption"
	RAIDTypeIssue      = "issue"
	RAIDTypeDependency = "dependency"
)
