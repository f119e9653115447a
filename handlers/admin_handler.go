package handlers

import (
	"net/http"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/services"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, users)
}

func (h *AdminHandler) SetAccess(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Access models.AccessLevel `json:"access"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.SetAccess(r.Context(), chi.URLParam(r, "username"), input.Access)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, user)
}
