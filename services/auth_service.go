package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login authenticates an existing account or, for a username seen for
	// the first time, registers it with read-only access. The reserved
	// admin username bootstraps the admin account on its first login.
	Login(ctx context.Context, creds models.Credentials) (*models.UserAccount, error)
	GetAccount(ctx context.Context, username string) (*models.UserAccount, error)
}

type authService struct {
	userRepo      repositories.UserRepository
	adminUsername string
	logger        *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, adminUsername string, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:      userRepo,
		adminUsername: normalizeUsername(adminUsername),
		logger:        logger,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*models.UserAccount, error) {
	username := normalizeUsername(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.register(ctx, username, creds.Password)
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, username, now); err != nil {
		// Не фатально для логина.
		s.logger.WarnContext(ctx, "failed to record last login",
			slog.String("username", username), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) GetAccount(ctx context.Context, username string) (*models.UserAccount, error) {
	user, err := s.userRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) register(ctx context.Context, username, password string) (*models.UserAccount, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.UserAccount{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		Access:       models.AccessRead,
	}
	if username == s.adminUsername {
		user.Role = models.RoleAdmin
		user.Access = models.AccessWrite
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			// Гонка с параллельным первым логином.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "registered new account on first login",
		slog.String("username", username), slog.String("role", string(user.Role)))

	user.PasswordHash = ""
	return user, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
