// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"prospect-dashboard/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as a StandardError body with the status mapped from
// its code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	std := errors.Normalize(err)
	status := errors.HTTPStatus(std.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request error", map[string]interface{}{
			"path":    r.URL.Path,
			"code":    std.Code,
			"details": std.Details,
		})
	}
	writeJSON(w, status, std)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
