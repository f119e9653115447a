package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	// SetAccess moves a regular account along the read/score/write ladder.
	// The admin account itself is off-limits.
	SetAccess(ctx context.Context, username string, access models.AccessLevel) (*models.UserAccount, error)
}

type adminService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewAdminService(userRepo repositories.UserRepository, logger *slog.Logger) AdminService {
	return &adminService{userRepo: userRepo, logger: logger}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *adminService) SetAccess(ctx context.Context, username string, access models.AccessLevel) (*models.UserAccount, error) {
	if !access.Valid() {
		return nil, ErrAccessLevelInvalid
	}

	username = normalizeUsername(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, ErrAdminImmutable
	}

	if err := s.userRepo.UpdateAccess(ctx, username, access); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user access changed",
		slog.String("username", username),
		slog.String("access", string(access)))

	user.Access = access
	user.PasswordHash = ""
	return user, nil
}
