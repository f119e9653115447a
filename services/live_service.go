package services

import (
	"context"
	"errors"

	"github.com/courtside/badminton-league/brackets"
	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
)

// LiveMatchInput marks one match row as being played right now.
type LiveMatchInput struct {
	FixtureKey string `json:"fixtureKey"`
	RowID      string `json:"rowId"`
	RowLabel   string `json:"rowLabel"`
	RowIndex   int    `json:"rowIndex"`
}

type LiveService interface {
	Start(ctx context.Context, tournamentID string, input LiveMatchInput, actor models.Session) (*models.LiveMatch, error)
	Stop(ctx context.Context, tournamentID, fixtureKey, rowID string) error
	List(ctx context.Context, tournamentID string) ([]models.LiveMatch, error)
}

type liveService struct {
	liveRepo repositories.LiveRepository
	hub      Broadcaster
}

func NewLiveService(liveRepo repositories.LiveRepository, hub Broadcaster) LiveService {
	return &liveService{liveRepo: liveRepo, hub: hub}
}

func (s *liveService) Start(ctx context.Context, tournamentID string, input LiveMatchInput, actor models.Session) (*models.LiveMatch, error) {
	if input.FixtureKey == "" || input.RowID == "" {
		return nil, ErrScoreTargetRequired
	}

	match := &models.LiveMatch{
		TournamentID: tournamentID,
		FixtureKey:   input.FixtureKey,
		RowID:        input.RowID,
		RowLabel:     input.RowLabel,
		RowIndex:     input.RowIndex,
		StartedBy:    actor.Username,
	}
	if err := s.liveRepo.Start(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLiveMatchAlreadyExists):
			return nil, ErrLiveMatchAlreadyExists
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	s.hub.BroadcastToRoom(tournamentID, brackets.EventLiveStarted, match)
	return match, nil
}

func (s *liveService) Stop(ctx context.Context, tournamentID, fixtureKey, rowID string) error {
	if err := s.liveRepo.Stop(ctx, tournamentID, fixtureKey, rowID); err != nil {
		if errors.Is(err, repositories.ErrLiveMatchNotFound) {
			return ErrLiveMatchNotFound
		}
		return err
	}

	s.hub.BroadcastToRoom(tournamentID, brackets.EventLiveStopped, map[string]string{
		"tournamentId": tournamentID,
		"fixtureKey":   fixtureKey,
		"rowId":        rowID,
	})
	return nil
}

func (s *liveService) List(ctx context.Context, tournamentID string) ([]models.LiveMatch, error) {
	return s.liveRepo.ListByTournament(ctx, tournamentID)
}
