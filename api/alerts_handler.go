package api

import "net/http"

// handleGetAlerts returns recent processed alerts, newest first
func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondWithError(w, http.StatusServiceUnavailable, "persistence not configured", nil)
		return
	}

	limit := getIntParam(r, "limit", 100, 1, 500)
	records, err := s.repo.RecentAlerts(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to query alerts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(records),
		"alerts": records,
	})
}

// handleGetDeliveries returns recent channel delivery attempts, newest first
func (s *Server) handleGetDeliveries(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		respondWithError(w, http.StatusServiceUnavailable, "persistence not configured", nil)
		return
	}

	limit := getIntParam(r, "limit", 100, 1, 500)
	logs, err := s.repo.RecentDeliveries(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to query delivery logs", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(logs),
		"deliveries": logs,
	})
}
