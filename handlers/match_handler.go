package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/torneoveteranos/tournament-system/middleware"
	"github.com/torneoveteranos/tournament-system/services"
)

type MatchHandler struct {
	resultService services.ResultService
}

func NewMatchHandler(resultService services.ResultService) *MatchHandler {
	return &MatchHandler{resultService: resultService}
}

type submitResultRequest struct {
	HomeScore   *int                       `json:"home_score"`
	AwayScore   *int                       `json:"away_score"`
	PlayerStats []services.PlayerStatDelta `json:"playerStats"`
}

// SubmitResult records the score and player stats of a match and returns the
// refreshed standings of its phase/group.
func (h *MatchHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID <= 0 {
		badRequestResponse(w, r, errors.New("invalid match ID"))
		return
	}

	var req submitResultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	out, err := h.resultService.SubmitResult(r.Context(), services.SubmitResultInput{
		MatchID:     matchID,
		HomeScore:   req.HomeScore,
		AwayScore:   req.AwayScore,
		PlayerStats: req.PlayerStats,
		Role:        role,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, out, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
