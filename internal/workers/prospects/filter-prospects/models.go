// internal/workers/prospects/filter-prospects/models.go
package filterprospects

import "prospect-dashboard/internal/workers/jobs"

type Input struct {
	SnapshotID string         `json:"snapshotId,omitempty"`
	Criteria   *jobs.Criteria `json:"criteria,omitempty"`
}

type Output struct {
	SnapshotID  string `json:"snapshotId"`
	Total       int    `json:"total"`
	ProspectIDs []int  `json:"prospectIds"`
}
