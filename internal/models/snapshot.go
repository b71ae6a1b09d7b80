// internal/models/snapshot.go
package models

import "time"

// GenerationMode selects where prospect records come from.
type GenerationMode string

const (
	ModeSynthetic GenerationMode = "synthetic"
	ModeSeed      GenerationMode = "seed"
)

// Snapshot is one immutable generation run.
type Snapshot struct {
	ID          string         `json:"id"`
	Mode        GenerationMode `json:"mode"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Prospects   []Prospect     `json:"prospects"`
}

// SnapshotInfo is the metadata of a snapshot without its records.
type SnapshotInfo struct {
	ID          string         `json:"id"`
	Mode        GenerationMode `json:"mode"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Count       int            `json:"count"`
}

// Info returns the snapshot metadata.
func (s *Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{
		ID:          s.ID,
		Mode:        s.Mode,
		GeneratedAt: s.GeneratedAt,
		Count:       len(s.Prospects),
	}
}

// Find returns the prospect with the given id.
func (s *Snapshot) Find(id int) (*Prospect, bool) {
	for i := range s.Prospects {
		if s.Prospects[i].ID == id {
			return &s.Prospects[i], true
		}
	}
	return nil, false
}
