package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/badminton-league/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.UserAccount) error
	GetByUsername(ctx context.Context, username string) (*models.UserAccount, error)
	List(ctx context.Context) ([]models.UserAccount, error)
	UpdateAccess(ctx context.Context, username string, access models.AccessLevel) error
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
	Delete(ctx context.Context, username string) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.UserAccount) error {
	query := `
		INSERT INTO user_accounts (id, username, password_hash, role, access)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Access,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "user_accounts_username_key" {
				return ErrUserUsernameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	query := `
		SELECT id, username, password_hash, role, access, last_login_at, created_at, updated_at
		FROM user_accounts
		WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.UserAccount, error) {
	query := `
		SELECT id, username, password_hash, role, access, last_login_at, created_at, updated_at
		FROM user_accounts
		ORDER BY username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.UserAccount, 0)
	for rows.Next() {
		user, scanErr := r.scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) UpdateAccess(ctx context.Context, username string, access models.AccessLevel) error {
	query := `
		UPDATE user_accounts SET access = $1, updated_at = NOW()
		WHERE username = $2`

	result, err := r.db.ExecContext(ctx, query, access, username)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	query := `
		UPDATE user_accounts SET last_login_at = $1, updated_at = NOW()
		WHERE username = $2`

	result, err := r.db.ExecContext(ctx, query, at, username)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM user_accounts WHERE username = $1`
	result, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresUserRepository) scanUser(row rowScanner) (*models.UserAccount, error) {
	user := &models.UserAccount{}
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Access,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user account: %w", err)
	}

	if lastLogin.Valid {
		user.LastLoginAt = &lastLogin.Time
	}
	return user, nil
}
