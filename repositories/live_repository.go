package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/badminton-league/models"
	"github.com/lib/pq"
)

var (
	ErrLiveMatchNotFound      = errors.New("live match not found")
	ErrLiveMatchAlreadyExists = errors.New("live match already exists")
)

type LiveRepository interface {
	Start(ctx context.Context, match *models.LiveMatch) error
	Stop(ctx context.Context, tournamentID, fixtureKey, rowID string) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.LiveMatch, error)
}

type postgresLiveRepository struct {
	db *sql.DB
}

func NewPostgresLiveRepository(db *sql.DB) LiveRepository {
	return &postgresLiveRepository{db: db}
}

func (r *postgresLiveRepository) Start(ctx context.Context, match *models.LiveMatch) error {
	query := `
		INSERT INTO live_matches (tournament_id, fixture_key, row_id, row_label, row_index, started_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING started_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.FixtureKey,
		match.RowID,
		match.RowLabel,
		match.RowIndex,
		match.StartedBy,
	).Scan(&match.StartedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrLiveMatchAlreadyExists
			case "23503":
				return ErrTournamentNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresLiveRepository) Stop(ctx context.Context, tournamentID, fixtureKey, rowID string) error {
	query := `
		DELETE FROM live_matches
		WHERE tournament_id = $1 AND fixture_key = $2 AND row_id = $3`

	result, err := r.db.ExecContext(ctx, query, tournamentID, fixtureKey, rowID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrLiveMatchNotFound)
}

func (r *postgresLiveRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.LiveMatch, error) {
	query := `
		SELECT tournament_id, fixture_key, row_id, row_label, row_index, started_by, started_at
		FROM live_matches
		WHERE tournament_id = $1
		ORDER BY started_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.LiveMatch, 0)
	for rows.Next() {
		var m models.LiveMatch
		err := rows.Scan(&m.TournamentID, &m.FixtureKey, &m.RowID, &m.RowLabel, &m.RowIndex, &m.StartedBy, &m.StartedAt)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
