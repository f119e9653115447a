package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside/badminton-league/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	List(ctx context.Context) ([]models.Profile, error)
	// ReplaceAll swaps the whole directory for the given set in one
	// transaction; the frontend always submits the full list.
	ReplaceAll(ctx context.Context, profiles []models.Profile) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT id, name, role, phone FROM profiles ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Phone); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresProfileRepository) ReplaceAll(ctx context.Context, profiles []models.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}

	for i, p := range profiles {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO profiles (id, name, role, phone, position) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Role, p.Phone, i)
		if err != nil {
			return fmt.Errorf("failed to insert profile %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}
