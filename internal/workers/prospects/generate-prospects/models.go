// internal/workers/prospects/generate-prospects/models.go
package generateprospects

type Input struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

type Output struct {
	SnapshotID  string `json:"snapshotId"`
	Count       int    `json:"count"`
	GeneratedAt string `json:"generatedAt"`
}
