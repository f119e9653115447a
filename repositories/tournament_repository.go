package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside/badminton-league/models"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrScoreFieldInvalid      = errors.New("score field invalid")
)

// scoreColumns — единственные колонки match_results, доступные для
// точечного обновления. Ключи совпадают с wire-именами полей.
var scoreColumns = map[string]string{
	models.FieldT1Player1: "t1_player1",
	models.FieldT1Player2: "t1_player2",
	models.FieldT2Player1: "t2_player1",
	models.FieldT2Player2: "t2_player2",
	models.FieldT1:        "t1",
	models.FieldT2:        "t2",
	models.FieldWinner:    "winner",
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.TournamentSummary, error)
	// Replace rewrites the whole record: the tournaments row plus every
	// child table, inside one transaction.
	Replace(ctx context.Context, tournament *models.Tournament) error
	// ReplaceScores rewrites only the score ledger, leaving the tournament
	// setup untouched.
	ReplaceScores(ctx context.Context, id string, scores models.ScoreLedger, updatedBy string) error
	// UpsertScoreField merges a single score field into one result row,
	// creating the row when it does not exist yet.
	UpsertScoreField(ctx context.Context, id, fixtureKey, rowID, field, value, updatedBy string) error
	GetScores(ctx context.Context, id string) (models.ScoreLedger, error)
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tournaments (id, name, type, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		tournament.ID,
		tournament.Name,
		tournament.Type,
		tournament.CreatedBy,
		tournament.UpdatedBy,
	).Scan(&tournament.CreatedAt, &tournament.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "tournaments_name_lower_key" {
				return ErrTournamentNameConflict
			}
		}
		return err
	}

	if err = r.insertChildren(ctx, tx, tournament); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament := &models.Tournament{}
	var logoKey sql.NullString

	query := `
		SELECT id, name, type, created_by, updated_by, logo_key, created_at, updated_at
		FROM tournaments
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Type,
		&tournament.CreatedBy,
		&tournament.UpdatedBy,
		&logoKey,
		&tournament.CreatedAt,
		&tournament.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	if logoKey.Valid {
		tournament.LogoKey = &logoKey.String
	}

	// Дочерние таблицы независимы, грузим их параллельно.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := r.loadCategories(gctx, id)
		if err == nil {
			tournament.Categories = categories
		}
		return err
	})
	g.Go(func() error {
		config, err := r.loadMatchTypeConfig(gctx, id)
		if err == nil {
			tournament.MatchTypeConfig = config
		}
		return err
	})
	g.Go(func() error {
		teams, err := r.loadTeams(gctx, id)
		if err == nil {
			tournament.Teams = teams
		}
		return err
	})
	g.Go(func() error {
		fixtures, err := r.loadFixtures(gctx, id)
		if err == nil {
			tournament.Fixtures = fixtures
		}
		return err
	})
	g.Go(func() error {
		scores, err := r.loadScores(gctx, id)
		if err == nil {
			tournament.Scores = scores
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.TournamentSummary, error) {
	query := `
		SELECT id, name, type, created_by, updated_by, created_at, updated_at
		FROM tournaments
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.TournamentSummary, 0)
	for rows.Next() {
		var s models.TournamentSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *postgresTournamentRepository) Replace(ctx context.Context, tournament *models.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tournaments SET name = $1, type = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	err = tx.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Type,
		tournament.UpdatedBy,
		tournament.ID,
	).Scan(&tournament.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "tournaments_name_lower_key" {
				return ErrTournamentNameConflict
			}
		}
		return err
	}

	// Полная перезапись: сначала выметаем детей, затем вставляем заново.
	for _, table := range []string{"categories", "match_type_configs", "teams", "fixtures", "match_results"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE tournament_id = $1`, tournament.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = r.insertChildren(ctx, tx, tournament); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) ReplaceScores(ctx context.Context, id string, scores models.ScoreLedger, updatedBy string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tournaments SET updated_by = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at`

	var updatedAt sql.NullTime
	if err = tx.QueryRowContext(ctx, query, updatedBy, id).Scan(&updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM match_results WHERE tournament_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear match_results: %w", err)
	}
	if err = r.insertScores(ctx, tx, id, scores); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) UpsertScoreField(ctx context.Context, id, fixtureKey, rowID, field, value, updatedBy string) error {
	column, ok := scoreColumns[field]
	if !ok {
		return ErrScoreFieldInvalid
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// column приходит из белого списка, подстановка безопасна.
	query := fmt.Sprintf(`
		INSERT INTO match_results (tournament_id, fixture_key, row_id, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tournament_id, fixture_key, row_id)
		DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()`, column, column, column)

	if _, err = tx.ExecContext(ctx, query, id, fixtureKey, rowID, value); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentNotFound
		}
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE tournaments SET updated_by = $1, updated_at = NOW() WHERE id = $2`,
		updatedBy, id)
	if err != nil {
		return err
	}
	if err = checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresTournamentRepository) GetScores(ctx context.Context, id string) (models.ScoreLedger, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tournaments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTournamentNotFound
	}
	return r.loadScores(ctx, id)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	query := `UPDATE tournaments SET logo_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// ExistsByName сравнивает имена без учёта регистра; excludeID позволяет
// турниру сохранить собственное имя при обновлении.
func (r *postgresTournamentRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tournaments
			WHERE LOWER(name) = LOWER($1) AND id <> $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// --- вставка детей ---

func (r *postgresTournamentRepository) insertChildren(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	for i, category := range t.Categories {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO categories (tournament_id, position, key, player_count) VALUES ($1, $2, $3, $4)`,
			t.ID, i, category.Key, category.Count)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", category.Key, err)
		}
	}

	for typeKey, count := range t.MatchTypeConfig {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO match_type_configs (tournament_id, type_key, match_count) VALUES ($1, $2, $3)`,
			t.ID, typeKey, count)
		if err != nil {
			return fmt.Errorf("failed to insert match type config %q: %w", typeKey, err)
		}
	}

	for i, team := range t.Teams {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO teams (tournament_id, position, name, owner) VALUES ($1, $2, $3, $4)`,
			t.ID, i, team.Name, team.Owner)
		if err != nil {
			return fmt.Errorf("failed to insert team %q: %w", team.Name, err)
		}
		for j, player := range team.Players {
			_, err = exec.ExecContext(ctx,
				`INSERT INTO players (tournament_id, team_position, position, category, rank, name) VALUES ($1, $2, $3, $4, $5, $6)`,
				t.ID, i, j, player.Category, player.Rank, player.Name)
			if err != nil {
				return fmt.Errorf("failed to insert player %q/%q: %w", team.Name, player.Rank, err)
			}
		}
	}

	for i, fixture := range t.Fixtures {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO fixtures (tournament_id, position, key, t1, t2) VALUES ($1, $2, $3, $4, $5)`,
			t.ID, i, fixture.Key, fixture.T1, fixture.T2)
		if err != nil {
			return fmt.Errorf("failed to insert fixture %q: %w", fixture.Key, err)
		}
	}

	return r.insertScores(ctx, exec, t.ID, t.Scores)
}

func (r *postgresTournamentRepository) insertScores(ctx context.Context, exec SQLExecutor, id string, scores models.ScoreLedger) error {
	for fixtureKey, rows := range scores {
		for rowID, entry := range rows {
			_, err := exec.ExecContext(ctx, `
				INSERT INTO match_results
					(tournament_id, fixture_key, row_id, t1_player1, t1_player2, t2_player1, t2_player2, t1, t2, winner)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				id, fixtureKey, rowID,
				entry.T1Player1, entry.T1Player2, entry.T2Player1, entry.T2Player2,
				string(entry.T1), string(entry.T2), entry.Winner)
			if err != nil {
				return fmt.Errorf("failed to insert result %s/%s: %w", fixtureKey, rowID, err)
			}
		}
	}
	return nil
}

// --- загрузка детей ---

func (r *postgresTournamentRepository) loadCategories(ctx context.Context, id string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, player_count FROM categories WHERE tournament_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresTournamentRepository) loadMatchTypeConfig(ctx context.Context, id string) (models.MatchTypeConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT type_key, match_count FROM match_type_configs WHERE tournament_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(models.MatchTypeConfig)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		config[key] = count
	}
	return config, rows.Err()
}

func (r *postgresTournamentRepository) loadTeams(ctx context.Context, id string) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT position, name, owner FROM teams WHERE tournament_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	indexByPosition := make(map[int]int)
	for rows.Next() {
		var pos int
		var team models.Team
		if err := rows.Scan(&pos, &team.Name, &team.Owner); err != nil {
			return nil, err
		}
		team.Players = make([]models.PlayerSlot, 0)
		indexByPosition[pos] = len(teams)
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	playerRows, err := r.db.QueryContext(ctx,
		`SELECT team_position, category, rank, name FROM players WHERE tournament_id = $1 ORDER BY team_position, position`, id)
	if err != nil {
		return nil, err
	}
	defer playerRows.Close()

	for playerRows.Next() {
		var teamPos int
		var slot models.PlayerSlot
		if err := playerRows.Scan(&teamPos, &slot.Category, &slot.Rank, &slot.Name); err != nil {
			return nil, err
		}
		if i, ok := indexByPosition[teamPos]; ok {
			teams[i].Players = append(teams[i].Players, slot)
		}
	}
	return teams, playerRows.Err()
}

func (r *postgresTournamentRepository) loadFixtures(ctx context.Context, id string) ([]models.Fixture, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, t1, t2 FROM fixtures WHERE tournament_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := make([]models.Fixture, 0)
	for rows.Next() {
		var f models.Fixture
		if err := rows.Scan(&f.Key, &f.T1, &f.T2); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}

func (r *postgresTournamentRepository) loadScores(ctx context.Context, id string) (models.ScoreLedger, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fixture_key, row_id, t1_player1, t1_player2, t2_player1, t2_player2, t1, t2, winner
		FROM match_results
		WHERE tournament_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(models.ScoreLedger)
	for rows.Next() {
		var fixtureKey, rowID, t1, t2 string
		var entry models.ScoreEntry
		err := rows.Scan(&fixtureKey, &rowID,
			&entry.T1Player1, &entry.T1Player2, &entry.T2Player1, &entry.T2Player2,
			&t1, &t2, &entry.Winner)
		if err != nil {
			return nil, err
		}
		entry.T1 = models.ScoreValue(t1)
		entry.T2 = models.ScoreValue(t2)
		if scores[fixtureKey] == nil {
			scores[fixtureKey] = make(map[string]models.ScoreEntry)
		}
		scores[fixtureKey][rowID] = entry
	}
	return scores, rows.Err()
}
