// internal/prospects/stats.go
package prospects

import "prospect-dashboard/internal/models"

type bucket struct {
	label string
	floor int
}

// Thresholds are checked in descending order; the first match wins.
var scoreBuckets = []bucket{
	{label: "90-100", floor: 90},
	{label: "80-89", floor: 80},
	{label: "70-79", floor: 70},
	{label: "60-69", floor: 60},
	{label: "0-59", floor: 0},
}

// Summarize reduces a collection into a StatsSummary.
func Summarize(prospects []models.Prospect) models.StatsSummary {
	summary := models.StatsSummary{
		ByStatus:          map[string]int{},
		BySector:          map[string]int{},
		ByState:           map[string]int{},
		ScoreDistribution: make([]models.ScoreBucket, len(scoreBuckets)),
	}
	for i, b := range scoreBuckets {
		summary.ScoreDistribution[i] = models.ScoreBucket{Range: b.label}
	}
	if len(prospects) == 0 {
		return summary
	}

	sum := 0
	for _, p := range prospects {
		sum += p.FitScore
		if p.Status != models.StatusNew {
			summary.Contacted++
		}
		if p.FitScore >= HighFitThreshold {
			summary.HighFit++
		}
		summary.ByStatus[string(p.Status)]++
		for _, s := range p.Sectors {
			summary.BySector[s]++
		}
		summary.ByState[p.Location.State]++

		for i, b := range scoreBuckets {
			if p.FitScore >= b.floor {
				summary.ScoreDistribution[i].Count++
				break
			}
		}
	}

	n := len(prospects)
	summary.TotalProspects = n
	summary.AvgFitScore = roundHalfUp(sum, n)
	return summary
}

// roundHalfUp divides sum by n rounding .5 upward. n must be positive.
func roundHalfUp(sum, n int) int {
	if sum < 0 {
		return -roundHalfUp(-sum, n)
	}
	return (2*sum + n) / (2 * n)
}
