package handlers

import (
	"net/http"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, profiles)
}

// Replace swaps the whole directory for the submitted list.
func (h *ProfileHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Profiles []models.Profile `json:"profiles"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profiles, err := h.profileService.ReplaceAll(r.Context(), input.Profiles)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, profiles)
}
