// internal/workers/prospects/export-prospects-csv/models.go
package exportprospectscsv

import "prospect-dashboard/internal/workers/jobs"

type Input struct {
	SnapshotID string         `json:"snapshotId,omitempty"`
	Criteria   *jobs.Criteria `json:"criteria,omitempty"`
}

type Output struct {
	SnapshotID string `json:"snapshotId"`
	FileName   string `json:"fileName"`
	RowCount   int    `json:"rowCount"`
	CSV        string `json:"csv"`
}
