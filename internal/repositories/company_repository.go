package repositories

import (
	"errors"
	"strings"

	"iwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanyFilter narrows company listings. Zero values mean "no filter".
type CompanyFilter struct {
	Name     string
	Industry string
	Location string
}

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	FindAll(db *gorm.DB, filter CompanyFilter, limit, offset int) ([]models.Company, int64, error)
	Update(db *gorm.DB, company *models.Company) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)
	Search(db *gorm.DB, query string, limit, offset int) ([]models.Company, int64, error)
	AverageRating(db *gorm.DB, companyID string) (float64, int64, error)
}

type companyRepository struct{}

func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *models.Company) error {
	return db.Create(company).Error
}

func (r *companyRepository) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(db *gorm.DB, filter CompanyFilter, limit, offset int) ([]models.Company, int64, error) {
	query := db.Model(&models.Company{})
	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, total, err
}

func (r *companyRepository) Update(db *gorm.DB, company *models.Company) error {
	result := db.Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Company{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Company{}).Count(&count).Error
	return count, err
}

func (r *companyRepository) Search(db *gorm.DB, query string, limit, offset int) ([]models.Company, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	base := db.Model(&models.Company{}).
		Where("LOWER(name) LIKE ? OR LOWER(industry) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	err := base.Order("name ASC").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, total, err
}

// AverageRating aggregates over verified reviews only; pending and rejected
// reviews never influence the public rating.
func (r *companyRepository) AverageRating(db *gorm.DB, companyID string) (float64, int64, error) {
	type row struct {
		Avg   float64
		Count int64
	}
	var res row
	err := db.Model(&models.Review{}).
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusVerified).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&res).Error
	return res.Avg, res.Count, err
}
