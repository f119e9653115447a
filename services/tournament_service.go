package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/courtside/badminton-league/brackets"
	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/courtside/badminton-league/storage"
	"github.com/google/uuid"
)

const defaultTournamentName = "Untitled Tournament"

// Broadcaster pushes room-scoped events to connected clients. The websocket
// hub satisfies it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(roomID string, eventType string, payload interface{})
}

// TournamentInput is the client payload for create and full update. Scores
// ride along so the client can round-trip the whole record.
type TournamentInput struct {
	Name            string                 `json:"name"`
	Type            models.TournamentType  `json:"type"`
	Categories      []models.Category      `json:"categories"`
	MatchTypeConfig models.MatchTypeConfig `json:"matchTypeConfig"`
	Teams           []models.Team          `json:"teams"`
	Fixtures        []models.Fixture       `json:"fixtures"`
	Scores          models.ScoreLedger     `json:"scores"`
}

// ScoreUpdateInput targets one field of one match row.
type ScoreUpdateInput struct {
	FixtureKey string `json:"fixtureKey"`
	RowID      string `json:"rowId"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

type TournamentService interface {
	Create(ctx context.Context, input TournamentInput, actor models.Session) (*models.Tournament, error)
	List(ctx context.Context) ([]models.TournamentSummary, error)
	Get(ctx context.Context, id string) (*models.Tournament, error)
	Update(ctx context.Context, id string, input TournamentInput, actor models.Session) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	UpdateScore(ctx context.Context, id string, input ScoreUpdateInput, actor models.Session) (models.ScoreLedger, error)
	Standings(ctx context.Context, id string) ([]models.StandingRow, error)
	Reports(ctx context.Context, id string) (*models.Reports, error)
	UploadLogo(ctx context.Context, id string, contentType string, body io.Reader) (string, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	hub            Broadcaster
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input TournamentInput, actor models.Session) (*models.Tournament, error) {
	tournament, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	tournament.ID = uuid.NewString()
	tournament.CreatedBy = actor.Username
	tournament.UpdatedBy = actor.Username

	taken, err := s.tournamentRepo.ExistsByName(ctx, tournament.Name, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tournament name: %w", err)
	}
	if taken {
		return nil, ErrTournamentNameConflict
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("name", tournament.Name),
		slog.String("created_by", actor.Username))
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.TournamentSummary, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) Update(ctx context.Context, id string, input TournamentInput, actor models.Session) (*models.Tournament, error) {
	// Если в теле только счёт, полная перезапись не нужна.
	if scoresOnly(input) {
		if err := s.tournamentRepo.ReplaceScores(ctx, id, input.Scores, actor.Username); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		s.hub.BroadcastToRoom(id, brackets.EventTournamentUpdated, map[string]string{
			"tournamentId": id,
			"updatedBy":    actor.Username,
		})
		return s.Get(ctx, id)
	}

	tournament, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	tournament.ID = id
	tournament.UpdatedBy = actor.Username

	taken, err := s.tournamentRepo.ExistsByName(ctx, tournament.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check tournament name: %w", err)
	}
	if taken {
		return nil, ErrTournamentNameConflict
	}

	if err := s.tournamentRepo.Replace(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}

	s.hub.BroadcastToRoom(id, brackets.EventTournamentUpdated, map[string]string{
		"tournamentId": id,
		"updatedBy":    actor.Username,
	})
	return s.Get(ctx, id)
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	if tournament.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete tournament logo",
				slog.String("tournament_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *tournamentService) UpdateScore(ctx context.Context, id string, input ScoreUpdateInput, actor models.Session) (models.ScoreLedger, error) {
	if input.FixtureKey == "" || input.RowID == "" {
		return nil, ErrScoreTargetRequired
	}

	err := s.tournamentRepo.UpsertScoreField(ctx, id, input.FixtureKey, input.RowID, input.Field, input.Value, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrScoreFieldInvalid):
			return nil, ErrScoreFieldInvalid
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	scores, err := s.tournamentRepo.GetScores(ctx, id)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(id, brackets.EventScoreUpdated, map[string]string{
		"tournamentId": id,
		"fixtureKey":   input.FixtureKey,
		"rowId":        input.RowID,
		"field":        input.Field,
		"value":        input.Value,
		"updatedBy":    actor.Username,
	})
	return scores, nil
}

func (s *tournamentService) Standings(ctx context.Context, id string) ([]models.StandingRow, error) {
	tournament, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandings(tournament.Teams, tournament.Fixtures, tournament.Scores), nil
}

func (s *tournamentService) Reports(ctx context.Context, id string) (*models.Reports, error) {
	tournament, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var rows []models.MatchRow
	if tournament.Type == models.TypeTeam {
		options := brackets.BuildMatchTypeOptions(tournament.Categories)
		rows = brackets.BuildMatchRows(options, tournament.MatchTypeConfig)
	} else {
		rows = brackets.NonTeamMatchRows(tournament.Type)
	}

	return brackets.ComputeReports(tournament.Fixtures, tournament.Scores, tournament.Teams, rows), nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id string, contentType string, body io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploaderUnavailable
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return "", ErrTournamentNotFound
		}
		return "", err
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return "", ErrUnsupportedImageType
	}

	key := fmt.Sprintf("tournaments/%s/logo-%s%s", id, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return "", err
	}

	// Старый логотип больше не нужен.
	if tournament.LogoKey != nil && *tournament.LogoKey != result.Key {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo",
				slog.String("tournament_id", id), slog.Any("error", err))
		}
	}
	return s.uploader.GetPublicURL(result.Key), nil
}

// scoresOnly reports whether an update payload carries nothing but a score
// ledger, in which case the tournament setup must stay untouched.
func scoresOnly(input TournamentInput) bool {
	return input.Scores != nil &&
		strings.TrimSpace(input.Name) == "" &&
		input.Type == "" &&
		input.Categories == nil &&
		input.MatchTypeConfig == nil &&
		input.Teams == nil &&
		input.Fixtures == nil
}

// normalize применяет дефолты и производные структуры к сырому вводу.
func (s *tournamentService) normalize(input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultTournamentName
	}

	tournamentType := input.Type
	if tournamentType == "" {
		tournamentType = models.TypeTeam
	}
	if !tournamentType.Valid() {
		return nil, ErrTournamentTypeInvalid
	}

	categories := make([]models.Category, 0, len(input.Categories))
	for _, c := range input.Categories {
		key := brackets.Slug(c.Key)
		count := c.Count
		if count < 0 {
			count = 0
		}
		categories = append(categories, models.Category{Key: key, Count: count})
	}

	config := input.MatchTypeConfig
	if config == nil {
		config = models.MatchTypeConfig{}
	}

	teams := make([]models.Team, 0, len(input.Teams))
	for _, team := range input.Teams {
		team.Name = strings.TrimSpace(team.Name)
		if team.Name == "" {
			continue
		}
		if team.Players == nil {
			team.Players = brackets.BuildPlayerSlots(categories)
		}
		teams = append(teams, team)
	}

	fixtures := input.Fixtures
	if len(fixtures) == 0 && len(teams) >= 2 {
		fixtures = brackets.BuildFixtures(teams)
	}

	scores := input.Scores
	if scores == nil {
		scores = models.ScoreLedger{}
	}

	return &models.Tournament{
		Name:            name,
		Type:            tournamentType,
		Categories:      categories,
		MatchTypeConfig: config,
		Teams:           teams,
		Fixtures:        fixtures,
		Scores:          scores,
	}, nil
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if tournament.LogoKey == nil || *tournament.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*tournament.LogoKey); url != "" {
		tournament.LogoURL = &url
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	}
	return "", fmt.Errorf("could not determine file extension from content type %q", contentType)
}
