package api

import "net/http"

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.SettingsService.GetSettings(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

// handleUpdateSettings replaces the settings. Fields left out of the body
// keep their current values.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.SettingsService.GetSettings(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := current
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.SettingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}
