package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/badminton-league/models"
	"github.com/lib/pq"
)

var (
	ErrCommentNotFound          = errors.New("comment not found")
	ErrCommentTournamentInvalid = errors.New("comment tournament invalid")
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByRow(ctx context.Context, tournamentID, fixtureKey, rowID string) ([]models.Comment, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Comment, error)
	IncrementLikes(ctx context.Context, commentID string) (int, error)
}

// LikeRepository stores per-row like counters, separate from comments.
type LikeRepository interface {
	Increment(ctx context.Context, tournamentID, fixtureKey, rowID string) (*models.MatchLike, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.MatchLike, error)
}

type postgresCommentRepository struct {
	db *sql.DB
}

func NewPostgresCommentRepository(db *sql.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, tournament_id, fixture_key, row_id, author, text)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING likes, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.ID,
		comment.TournamentID,
		comment.FixtureKey,
		comment.RowID,
		comment.Author,
		comment.Text,
	).Scan(&comment.Likes, &comment.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCommentTournamentInvalid
		}
		return err
	}
	return nil
}

func (r *postgresCommentRepository) ListByRow(ctx context.Context, tournamentID, fixtureKey, rowID string) ([]models.Comment, error) {
	query := `
		SELECT id, tournament_id, fixture_key, row_id, author, text, likes, created_at
		FROM comments
		WHERE tournament_id = $1 AND fixture_key = $2 AND row_id = $3
		ORDER BY created_at ASC`
	return r.queryComments(ctx, query, tournamentID, fixtureKey, rowID)
}

func (r *postgresCommentRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Comment, error) {
	query := `
		SELECT id, tournament_id, fixture_key, row_id, author, text, likes, created_at
		FROM comments
		WHERE tournament_id = $1
		ORDER BY created_at ASC`
	return r.queryComments(ctx, query, tournamentID)
}

func (r *postgresCommentRepository) IncrementLikes(ctx context.Context, commentID string) (int, error) {
	query := `UPDATE comments SET likes = likes + 1 WHERE id = $1 RETURNING likes`

	var likes int
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (r *postgresCommentRepository) queryComments(ctx context.Context, query string, args ...interface{}) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.TournamentID, &c.FixtureKey, &c.RowID, &c.Author, &c.Text, &c.Likes, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

type postgresLikeRepository struct {
	db *sql.DB
}

func NewPostgresLikeRepository(db *sql.DB) LikeRepository {
	return &postgresLikeRepository{db: db}
}

func (r *postgresLikeRepository) Increment(ctx context.Context, tournamentID, fixtureKey, rowID string) (*models.MatchLike, error) {
	query := `
		INSERT INTO match_likes (tournament_id, fixture_key, row_id, likes)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tournament_id, fixture_key, row_id)
		DO UPDATE SET likes = match_likes.likes + 1, updated_at = NOW()
		RETURNING likes, updated_at`

	like := &models.MatchLike{
		TournamentID: tournamentID,
		FixtureKey:   fixtureKey,
		RowID:        rowID,
	}
	err := r.db.QueryRowContext(ctx, query, tournamentID, fixtureKey, rowID).Scan(&like.Likes, &like.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return like, nil
}

func (r *postgresLikeRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.MatchLike, error) {
	query := `
		SELECT tournament_id, fixture_key, row_id, likes, updated_at
		FROM match_likes
		WHERE tournament_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make([]models.MatchLike, 0)
	for rows.Next() {
		var l models.MatchLike
		if err := rows.Scan(&l.TournamentID, &l.FixtureKey, &l.RowID, &l.Likes, &l.UpdatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
