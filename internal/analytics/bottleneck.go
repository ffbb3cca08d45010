package analytics

import "time"

// Bottleneck summarizes the overloaded days of one resource.
type Bottleneck struct {
	ResourceID     int64       `json:"resource_id"`
	ResourceName   string      `json:"resource_name"`
	OverloadedDays int         `json:"overloaded_days"`
	Dates          []time.Time `json:"dates"`
}

// FindBottlenecks scans the heatmap for resource-days above 100%
// utilization. Resources with no overloaded days are omitted.
func FindBottlenecks(heatmap []ResourceHeatmap) []Bottleneck {
	var bottlenecks []Bottleneck
	for _, row := range heatmap {
		var dates []time.Time
		for _, cell := range row.Days {
			if cell.Utilization > 100 {
				dates = append(dates, cell.Date)
			}
		}
		if len(dates) == 0 {
			continue
		}
		bottlenecks = append(bottlenecks, Bottleneck{
			ResourceID:     row.ResourceID,
			ResourceName:   row.ResourceName,
			OverloadedDays: len(dates),
			Dates:          dates,
		})
	}
	return bottlenecks
}

// Suggestion is a resource with spare hours on a target date.
type Suggestion struct {
	ResourceID   int64   `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	Available    float64 `json:"available"`
}

// SuggestResources returns resources with at least requiredHours available
// on the target date. Order follows the heatmap's resource order; no
// priority ranking is applied.
func SuggestResources(heatmap []ResourceHeatmap, date time.Time, requiredHours float64) []Suggestion {
	day := truncateToDay(date)

	var suggestions []Suggestion
	for _, row := range heatmap {
		for _, cell := range row.Days {
			if !cell.Date.Equal(day) {
				continue
			}
			if cell.Available >= requiredHours {
				suggestions = append(suggestions, Suggestion{
					ResourceID:   row.ResourceID,
					ResourceName: row.ResourceName,
					Available:    cell.Available,
				})
			}
			break
		}
	}
	return suggestions
}
