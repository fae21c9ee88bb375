package services

import (
	"context"
	"errors"

	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SettingsService interface {
	Get(ctx context.Context, db *gorm.DB, userID string) (*dto.SettingsResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, creating the default row on first
// access for accounts that predate the settings table.
func (s *settingsService) Get(ctx context.Context, db *gorm.DB, userID string) (*dto.SettingsResponse, error) {
	settings, err := s.findOrCreate(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.findOrCreate(db, userID)
	if err != nil {
		return nil, err
	}

	if req.EmailNotificationsEnabled != nil {
		settings.EmailNotificationsEnabled = *req.EmailNotificationsEnabled
	}
	if req.NotifyOnReviewApproval != nil {
		settings.NotifyOnReviewApproval = *req.NotifyOnReviewApproval
	}
	if req.NotifyOnReviewRejection != nil {
		settings.NotifyOnReviewRejection = *req.NotifyOnReviewRejection
	}

	if err := s.settingsRepo.Update(db, settings); err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.NewSettingsResponse(settings), nil
}

func (s *settingsService) findOrCreate(db *gorm.DB, userID string) (*models.AccountSettings, error) {
	settings, err := s.settingsRepo.FindByUserID(db, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repositories.ErrSettingsNotFound) {
		return nil, apperrors.StorageError(err)
	}

	settings = &models.AccountSettings{
		UserID:                    userID,
		EmailNotificationsEnabled: true,
		NotifyOnReviewApproval:    true,
		NotifyOnReviewRejection:   true,
	}
	if err := s.settingsRepo.Create(db, settings); err != nil {
		return nil, apperrors.StorageError(err)
	}
	return settings, nil
}
