package repositories

import (
	"errors"

	"iwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSettingsNotFound = errors.New("account settings not found")

type SettingsRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.AccountSettings, error)
	Create(db *gorm.DB, settings *models.AccountSettings) error
	Update(db *gorm.DB, settings *models.AccountSettings) error
}

type settingsRepository struct{}

func NewSettingsRepository() SettingsRepository {
	return &settingsRepository{}
}

func (r *settingsRepository) FindByUserID(db *gorm.DB, userID string) (*models.AccountSettings, error) {
	var settings models.AccountSettings
	if err := db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Create(db *gorm.DB, settings *models.AccountSettings) error {
	return db.Create(settings).Error
}

func (r *settingsRepository) Update(db *gorm.DB, settings *models.AccountSettings) error {
	result := db.Save(settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
