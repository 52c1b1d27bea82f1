package handlers

import (
	"net/http"

	"github.com/torneoveteranos/tournament-system/middleware"
	"github.com/torneoveteranos/tournament-system/services"
)

type Phase2Handler struct {
	phase2Service services.Phase2Service
}

func NewPhase2Handler(phase2Service services.Phase2Service) *Phase2Handler {
	return &Phase2Handler{phase2Service: phase2Service}
}

// Initialize seeds the phase-2 groups from the final regular-season table.
func (h *Phase2Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	bracket, err := h.phase2Service.Initialize(r.Context(), role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Phase2Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.phase2Service.GetGroups(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Phase2Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.phase2Service.GetSchedule(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *Phase2Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tables, err := h.phase2Service.GetStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
