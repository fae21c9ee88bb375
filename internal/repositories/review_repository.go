package repositories

import (
	"errors"

	"iwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByCompany(db *gorm.DB, companyID string, status models.ReviewStatus, limit, offset int, includeFiles bool) ([]models.Review, int64, error)
	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Review, int64, error)
	FindByStatus(db *gorm.DB, status models.ReviewStatus, limit, offset int) ([]models.Review, int64, error)
	Update(db *gorm.DB, review *models.Review) error
	UpdateStatus(db *gorm.DB, id string, status models.ReviewStatus, notes string) error
	Delete(db *gorm.DB, id string) error
	ReplaceFlags(db *gorm.DB, reviewID string, flags []models.AIScannerFlag) error
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status models.ReviewStatus) (int64, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("User").Preload("Company").Preload("AIScannerFlags").Preload("FileAttachments").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByCompany(db *gorm.DB, companyID string, status models.ReviewStatus, limit, offset int, includeFiles bool) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("User")
	if includeFiles {
		query = query.Preload("FileAttachments")
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Company").Preload("AIScannerFlags").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) FindByStatus(db *gorm.DB, status models.ReviewStatus, limit, offset int) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	// Oldest first so the moderation queue drains in submission order.
	err := query.Preload("User").Preload("Company").Preload("AIScannerFlags").
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) Update(db *gorm.DB, review *models.Review) error {
	result := db.Save(review)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) UpdateStatus(db *gorm.DB, id string, status models.ReviewStatus, notes string) error {
	result := db.Model(&models.Review{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           status,
		"moderation_notes": notes,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ReplaceFlags drops the review's existing findings and stores the new set.
// A re-scan always starts from a clean slate so stale flags cannot survive
// a content edit.
func (r *reviewRepository) ReplaceFlags(db *gorm.DB, reviewID string, flags []models.AIScannerFlag) error {
	if err := db.Where("review_id = ?", reviewID).Delete(&models.AIScannerFlag{}).Error; err != nil {
		return err
	}
	if len(flags) == 0 {
		return nil
	}
	for i := range flags {
		flags[i].ReviewID = reviewID
	}
	return db.Create(&flags).Error
}

func (r *reviewRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Count(&count).Error
	return count, err
}

func (r *reviewRepository) CountByStatus(db *gorm.DB, status models.ReviewStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
