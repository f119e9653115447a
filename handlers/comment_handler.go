package handlers

import (
	"net/http"

	"github.com/courtside/badminton-league/middleware"
	"github.com/courtside/badminton-league/services"
	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())

	var input services.CommentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.TournamentID = chi.URLParam(r, "tournamentID")

	comment, err := h.commentService.Add(r.Context(), input, session.Username)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusCreated, comment)
}

// List returns the comments of one match row when fixtureKey/rowId query
// parameters are present, otherwise every comment of the tournament.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	fixtureKey := r.URL.Query().Get("fixtureKey")
	rowID := r.URL.Query().Get("rowId")

	if fixtureKey == "" && rowID == "" {
		comments, err := h.commentService.ListByTournament(r.Context(), tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		dataResponse(w, r, http.StatusOK, comments)
		return
	}

	comments, err := h.commentService.ListByRow(r.Context(), tournamentID, fixtureKey, rowID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, comments)
}

func (h *CommentHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	likes, err := h.commentService.LikeComment(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, jsonResponse{"likes": likes})
}

func (h *CommentHandler) LikeMatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FixtureKey string `json:"fixtureKey"`
		RowID      string `json:"rowId"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	like, err := h.commentService.LikeMatch(r.Context(), chi.URLParam(r, "tournamentID"), input.FixtureKey, input.RowID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, like)
}

func (h *CommentHandler) ListMatchLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.commentService.ListMatchLikes(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	dataResponse(w, r, http.StatusOK, likes)
}
