package handlers

import (
	"net/http"

	"github.com/courtside/badminton-league/middleware"
	"github.com/courtside/badminton-league/services"
	"github.com/go-chi/chi/v5"
)

type LiveHandler struct {
	liveService services.LiveService
}

func NewLiveHandler(liveService services.LiveService) *LiveHandler {
	return &LiveHandler{liveService: liveService}
}

func (h *LiveHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())

	var input services.LiveMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.liveService.Start(r.Context(), chi.URLParam(r, "tournamentID"), input, session)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusCreated, match)
}

func (h *LiveHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FixtureKey string `json:"fixtureKey"`
		RowID      string `json:"rowId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err := h.liveService.Stop(r.Context(), chi.URLParam(r, "tournamentID"), input.FixtureKey, input.RowID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, jsonResponse{"stopped": true})
}

func (h *LiveHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.liveService.List(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, matches)
}
