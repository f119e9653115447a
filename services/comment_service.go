package services

import (
	"context"
	"errors"
	"strings"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/google/uuid"
)

// CommentInput is the client payload for posting a comment. An empty
// fixture/row pair targets the tournament-wide standings thread.
type CommentInput struct {
	TournamentID string `json:"tournamentId"`
	FixtureKey   string `json:"fixtureKey"`
	RowID        string `json:"rowId"`
	Text         string `json:"text"`
}

type CommentService interface {
	Add(ctx context.Context, input CommentInput, author string) (*models.Comment, error)
	ListByRow(ctx context.Context, tournamentID, fixtureKey, rowID string) ([]models.Comment, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Comment, error)
	LikeComment(ctx context.Context, commentID string) (int, error)
	LikeMatch(ctx context.Context, tournamentID, fixtureKey, rowID string) (*models.MatchLike, error)
	ListMatchLikes(ctx context.Context, tournamentID string) ([]models.MatchLike, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, likeRepo repositories.LikeRepository) CommentService {
	return &commentService{commentRepo: commentRepo, likeRepo: likeRepo}
}

func (s *commentService) Add(ctx context.Context, input CommentInput, author string) (*models.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	fixtureKey, rowID := input.FixtureKey, input.RowID
	if fixtureKey == "" {
		fixtureKey = models.StandingsFixtureKey
	}
	if rowID == "" {
		rowID = models.CommonRowID
	}

	comment := &models.Comment{
		ID:           uuid.NewString(),
		TournamentID: input.TournamentID,
		FixtureKey:   fixtureKey,
		RowID:        rowID,
		Text:         text,
		Author:       author,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrCommentTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByRow(ctx context.Context, tournamentID, fixtureKey, rowID string) ([]models.Comment, error) {
	return s.commentRepo.ListByRow(ctx, tournamentID, fixtureKey, rowID)
}

func (s *commentService) ListByTournament(ctx context.Context, tournamentID string) ([]models.Comment, error) {
	return s.commentRepo.ListByTournament(ctx, tournamentID)
}

func (s *commentService) LikeComment(ctx context.Context, commentID string) (int, error) {
	likes, err := s.commentRepo.IncrementLikes(ctx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (s *commentService) LikeMatch(ctx context.Context, tournamentID, fixtureKey, rowID string) (*models.MatchLike, error) {
	if fixtureKey == "" {
		fixtureKey = models.StandingsFixtureKey
	}
	if rowID == "" {
		rowID = models.CommonRowID
	}
	like, err := s.likeRepo.Increment(ctx, tournamentID, fixtureKey, rowID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return like, nil
}

func (s *commentService) ListMatchLikes(ctx context.Context, tournamentID string) ([]models.MatchLike, error) {
	return s.likeRepo.ListByTournament(ctx, tournamentID)
}
