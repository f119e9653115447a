package handlers

import (
	"net/http"

	"github.com/courtside/badminton-league/middleware"
	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/services"
)

type AuthHandler struct {
	authService services.AuthService
	sessions    *middleware.SessionManager
}

func NewAuthHandler(authService services.AuthService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Login godoc
// @Summary Log in (first login registers the account)
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Username and password"
// @Success 200 {object} models.UserAccount
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.sessions.Issue(models.Session{
		Username: user.Username,
		Role:     user.Role,
		Access:   user.Access,
	})
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	dataResponse(w, r, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	dataResponse(w, r, http.StatusOK, jsonResponse{"loggedOut": true})
}

// Me echoes the current session's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	user, err := h.authService.GetAccount(r.Context(), session.Username)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, user)
}
