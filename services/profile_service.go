package services

import (
	"context"
	"strings"

	"github.com/courtside/badminton-league/models"
	"github.com/courtside/badminton-league/repositories"
	"github.com/google/uuid"
)

type ProfileService interface {
	List(ctx context.Context) ([]models.Profile, error)
	// ReplaceAll swaps the whole player directory; the client always
	// submits the complete list.
	ReplaceAll(ctx context.Context, profiles []models.Profile) ([]models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

func (s *profileService) ReplaceAll(ctx context.Context, profiles []models.Profile) ([]models.Profile, error) {
	cleaned := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		switch p.Role {
		case models.ProfilePlayer, models.ProfileOwner, models.ProfileBoth:
		default:
			p.Role = models.ProfilePlayer
		}
		cleaned = append(cleaned, p)
	}

	if err := s.profileRepo.ReplaceAll(ctx, cleaned); err != nil {
		return nil, err
	}
	return cleaned, nil
}
