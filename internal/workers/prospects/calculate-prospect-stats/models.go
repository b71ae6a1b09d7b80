// internal/workers/prospects/calculate-prospect-stats/models.go
package calculateprospectstats

import (
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/workers/jobs"
)

type Input struct {
	SnapshotID string         `json:"snapshotId,omitempty"`
	Criteria   *jobs.Criteria `json:"criteria,omitempty"`
}

type Output struct {
	SnapshotID string              `json:"snapshotId"`
	Stats      models.StatsSummary `json:"stats"`
}
