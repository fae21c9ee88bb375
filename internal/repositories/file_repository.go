package repositories

import (
	"errors"

	"iwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file attachment not found")

type FileRepository interface {
	Create(db *gorm.DB, file *models.FileAttachment) error
	FindByID(db *gorm.DB, id string) (*models.FileAttachment, error)
	FindByReview(db *gorm.DB, reviewID string) ([]models.FileAttachment, error)
	Delete(db *gorm.DB, id string) error
}

type fileRepository struct{}

func NewFileRepository() FileRepository {
	return &fileRepository{}
}

func (r *fileRepository) Create(db *gorm.DB, file *models.FileAttachment) error {
	return db.Create(file).Error
}

func (r *fileRepository) FindByID(db *gorm.DB, id string) (*models.FileAttachment, error) {
	var file models.FileAttachment
	if err := db.First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) FindByReview(db *gorm.DB, reviewID string) ([]models.FileAttachment, error) {
	var files []models.FileAttachment
	err := db.Where("review_id = ?", reviewID).Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *fileRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.FileAttachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}
