// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/prospects"
)

const notConfigured = "not_configured"

type healthResponse struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Services    map[string]string `json:"services"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Timestamp:   s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:     s.app.Version,
		Environment: s.app.Environment,
		Services: map[string]string{
			"database":   notConfigured,
			"openai":     notConfigured,
			"crunchbase": notConfigured,
			"email":      notConfigured,
		},
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	backends := map[string]string{}
	var err error
	if s.readiness != nil {
		backends, err = s.readiness(r.Context())
	}
	status, code := "ready", http.StatusOK
	if err != nil {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status":   status,
		"backends": backends,
	})
}

type createSnapshotRequest struct {
	Mode  models.GenerationMode `json:"mode"`
	Count int                   `json:"count"`
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, r, errors.NewInputValidationFailedError(fmt.Sprintf("invalid JSON body: %v", err)))
		return
	}

	ctx, span := s.obs.StartSpan(r.Context(), "snapshots.generate",
		attribute.String("mode", string(req.Mode)),
		attribute.Int("count", req.Count),
	)
	defer span.End()

	snap, err := s.service.Generate(ctx, req.Mode, req.Count)
	if err != nil {
		span.RecordError(err)
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap.Info())
}

func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Resolve(r.Context(), "")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Info())
}

type listResponse struct {
	SnapshotID string            `json:"snapshotId"`
	Total      int               `json:"total"`
	Sort       string            `json:"sort"`
	Order      string            `json:"order"`
	Page       *pageInfo         `json:"page,omitempty"`
	Prospects  []models.Prospect `json:"prospects"`
}

type pageInfo struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Pages  int `json:"pages"`
}

// handleListProspects sorts and pages the filtered view. Total always counts
// the whole filtered view.
func (s *Server) handleListProspects(w http.ResponseWriter, r *http.Request) {
	view, err := parseListView(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, filtered, ok := s.query(w, r)
	if !ok {
		return
	}

	prospects.Sort(filtered, view.sort, view.desc)
	resp := listResponse{
		SnapshotID: snap.ID,
		Total:      len(filtered),
		Sort:       string(view.sort),
		Order:      "asc",
		Prospects:  filtered,
	}
	if view.desc {
		resp.Order = "desc"
	}
	if view.paged {
		resp.Page = &pageInfo{
			Number: view.page,
			Size:   view.pageSize,
			Pages:  (len(filtered) + view.pageSize - 1) / view.pageSize,
		}
		resp.Prospects = prospects.Page(filtered, view.page, view.pageSize)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, filtered, ok := s.query(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, prospects.Summarize(filtered))
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Resolve(r.Context(), r.URL.Query().Get("snapshot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prospects.Options(snap.Prospects))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	export, err := s.service.Export(r.Context(), r.URL.Query().Get("snapshot"), criteria)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("X-Snapshot-Id", export.SnapshotID)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, export.CSV)
}

func (s *Server) handleGetProspect(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, errors.NewInputValidationFailedError(fmt.Sprintf("prospect id must be an integer, got %q", r.PathValue("id"))))
		return
	}
	p, err := s.service.Prospect(r.Context(), r.URL.Query().Get("snapshot"), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) (*models.Snapshot, []models.Prospect, bool) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	snap, filtered, err := s.service.Query(r.Context(), r.URL.Query().Get("snapshot"), criteria)
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	return snap, filtered, true
}
