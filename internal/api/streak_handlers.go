package api

import "net/http"

func (s *Server) handleGetStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.StreakService.Current(r.Context()))
}

// handleRefreshStreak waits for a recomputation and returns its result.
func (s *Server) handleRefreshStreak(w http.ResponseWriter, r *http.Request) {
	current, err := s.StreakService.Refresh(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, current)
}
