package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/founderlink/founderlink/internal/analytics"
)

// handleAnalytics recomputes an outcome report on demand. Query params:
// dimension (default score_range) and days (default 30).
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	dim := analytics.Dimension(r.URL.Query().Get("dimension"))
	if dim == "" {
		dim = analytics.DimScoreRange
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	report, err := s.analytics.Aggregate(time.Duration(days)*24*time.Hour, dim)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}
