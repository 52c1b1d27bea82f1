package handlers

import (
	"net/http"

	"github.com/torneoveteranos/tournament-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetStandings returns the regular-season table, recomputed from the match set.
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	table, err := h.standingsService.GetLeagueTable(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	matches, err := h.standingsService.GetRegularSchedule(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
