// internal/workers/jobs/criteria.go
package jobs

import "prospect-dashboard/internal/models"

// Criteria is the job variable form of models.FilterCriteria.
type Criteria struct {
	Search     string      `json:"search,omitempty"`
	Sectors    []string    `json:"sectors,omitempty"`
	States     []string    `json:"states,omitempty"`
	Statuses   []string    `json:"statuses,omitempty"`
	ScoreRange *ScoreRange `json:"scoreRange,omitempty"`
}

// ScoreRange bounds default to 0 and 100 when omitted.
type ScoreRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

func (c *Criteria) FilterCriteria() models.FilterCriteria {
	out := models.DefaultFilterCriteria()
	if c == nil {
		return out
	}
	out.Search = c.Search
	if c.Sectors != nil {
		out.Sectors = c.Sectors
	}
	if c.States != nil {
		out.States = c.States
	}
	for _, s := range c.Statuses {
		out.Statuses = append(out.Statuses, models.Status(s))
	}
	if c.ScoreRange != nil {
		out.ScoreRange = models.ScoreRange{Min: c.ScoreRange.Min, Max: c.ScoreRange.Max}
	}
	return out
}
