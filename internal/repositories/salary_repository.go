package repositories

import (
	"errors"
	"strings"
	"time"

	"iwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSalaryNotFound = errors.New("salary not found")

// SalaryFilter narrows amount queries for the aggregation engine. Empty
// strings mean "no constraint". JobTitle, Location and Industry match
// case-insensitive substrings; the rest compare exactly.
type SalaryFilter struct {
	CompanyID        string
	ExcludeCompanyID string
	JobTitle         string
	ExperienceLevel  string
	EmploymentType   string
	Location         string
	ExcludeLocation  string
	Industry         string
	IndustryExact    string
	Currency         string
}

// GroupedStat is one aggregation bucket keyed by a grouping dimension.
type GroupedStat struct {
	Key     string  `json:"key"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type SalaryRepository interface {
	Create(db *gorm.DB, salary *models.Salary) error
	FindByID(db *gorm.DB, id string) (*models.Salary, error)
	FindByCompany(db *gorm.DB, companyID string, limit, offset int) ([]models.Salary, int64, error)
	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Salary, int64, error)
	FindAll(db *gorm.DB, filter SalaryFilter, limit, offset int) ([]models.Salary, int64, error)
	Update(db *gorm.DB, salary *models.Salary) error
	Delete(db *gorm.DB, id string) error
	FindAmounts(db *gorm.DB, filter SalaryFilter) ([]float64, error)
	GroupTopByLocation(db *gorm.DB, filter SalaryFilter, limit int) ([]GroupedStat, error)
	GroupTopByIndustry(db *gorm.DB, filter SalaryFilter, limit int) ([]GroupedStat, error)
	FindDuplicateGroups(db *gorm.DB, since time.Time) ([][]models.Salary, error)
	Count(db *gorm.DB) (int64, error)
	DistinctJobTitles(db *gorm.DB, query string, limit int) ([]string, error)
}

type salaryRepository struct{}

func NewSalaryRepository() SalaryRepository {
	return &salaryRepository{}
}

func (r *salaryRepository) Create(db *gorm.DB, salary *models.Salary) error {
	return db.Create(salary).Error
}

func (r *salaryRepository) FindByID(db *gorm.DB, id string) (*models.Salary, error) {
	var salary models.Salary
	if err := db.Preload("Company").First(&salary, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, err
	}
	return &salary, nil
}

func (r *salaryRepository) FindByCompany(db *gorm.DB, companyID string, limit, offset int) ([]models.Salary, int64, error) {
	query := db.Model(&models.Salary{}).Where("company_id = ?", companyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var salaries []models.Salary
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&salaries).Error
	return salaries, total, err
}

func (r *salaryRepository) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Salary, int64, error) {
	query := db.Model(&models.Salary{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var salaries []models.Salary
	err := query.Preload("Company").Order("created_at DESC").Limit(limit).Offset(offset).Find(&salaries).Error
	return salaries, total, err
}

func (r *salaryRepository) FindAll(db *gorm.DB, filter SalaryFilter, limit, offset int) ([]models.Salary, int64, error) {
	query := applySalaryFilter(db.Model(&models.Salary{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var salaries []models.Salary
	err := query.Preload("Company").Order("salaries.created_at DESC").Limit(limit).Offset(offset).Find(&salaries).Error
	return salaries, total, err
}

func (r *salaryRepository) Update(db *gorm.DB, salary *models.Salary) error {
	result := db.Save(salary)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSalaryNotFound
	}
	return nil
}

func (r *salaryRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Salary{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSalaryNotFound
	}
	return nil
}

// FindAmounts returns raw amounts for the filter. The quantile math runs in
// the service layer, so the full sample is pulled rather than aggregated in
// SQL.
func (r *salaryRepository) FindAmounts(db *gorm.DB, filter SalaryFilter) ([]float64, error) {
	var amounts []float64
	err := applySalaryFilter(db.Model(&models.Salary{}), filter).
		Pluck("salaries.amount", &amounts).Error
	return amounts, err
}

// GroupTopByLocation aggregates amounts per location, ranked by sample
// count descending, capped at limit.
func (r *salaryRepository) GroupTopByLocation(db *gorm.DB, filter SalaryFilter, limit int) ([]GroupedStat, error) {
	var stats []GroupedStat
	err := applySalaryFilter(db.Model(&models.Salary{}), filter).
		Select("salaries.location as key, COUNT(*) as count, AVG(salaries.amount) as average, MIN(salaries.amount) as min, MAX(salaries.amount) as max").
		Where("salaries.location <> ''").
		Group("salaries.location").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// GroupTopByIndustry aggregates amounts per company industry, ranked by
// sample count descending, capped at limit.
func (r *salaryRepository) GroupTopByIndustry(db *gorm.DB, filter SalaryFilter, limit int) ([]GroupedStat, error) {
	query := applySalaryFilter(db.Model(&models.Salary{}), filter)
	if filter.Industry == "" && filter.IndustryExact == "" {
		query = query.Joins("JOIN companies ON companies.id = salaries.company_id")
	}

	var stats []GroupedStat
	err := query.
		Select("companies.industry as key, COUNT(*) as count, AVG(salaries.amount) as average, MIN(salaries.amount) as min, MAX(salaries.amount) as max").
		Where("companies.industry <> ''").
		Group("companies.industry").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// FindDuplicateGroups returns sets of two or more salaries submitted by the
// same user for the same company and title since the cutoff.
func (r *salaryRepository) FindDuplicateGroups(db *gorm.DB, since time.Time) ([][]models.Salary, error) {
	var salaries []models.Salary
	err := db.Model(&models.Salary{}).
		Preload("User").
		Preload("Company").
		Where("created_at >= ?", since).
		Order("user_id, company_id, LOWER(job_title), created_at").
		Find(&salaries).Error
	if err != nil {
		return nil, err
	}

	var groups [][]models.Salary
	var current []models.Salary
	sameGroup := func(a, b *models.Salary) bool {
		return a.UserID == b.UserID &&
			a.CompanyID == b.CompanyID &&
			strings.EqualFold(a.JobTitle, b.JobTitle)
	}
	for i := range salaries {
		if len(current) > 0 && !sameGroup(&current[0], &salaries[i]) {
			if len(current) > 1 {
				groups = append(groups, current)
			}
			current = nil
		}
		current = append(current, salaries[i])
	}
	if len(current) > 1 {
		groups = append(groups, current)
	}
	return groups, nil
}

func (r *salaryRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Salary{}).Count(&count).Error
	return count, err
}

func (r *salaryRepository) DistinctJobTitles(db *gorm.DB, query string, limit int) ([]string, error) {
	var titles []string
	q := db.Model(&models.Salary{}).Distinct("job_title")
	if query != "" {
		q = q.Where("LOWER(job_title) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	err := q.Order("job_title ASC").Limit(limit).Pluck("job_title", &titles).Error
	return titles, err
}

func applySalaryFilter(query *gorm.DB, filter SalaryFilter) *gorm.DB {
	if filter.CompanyID != "" {
		query = query.Where("salaries.company_id = ?", filter.CompanyID)
	}
	if filter.ExcludeCompanyID != "" {
		query = query.Where("salaries.company_id <> ?", filter.ExcludeCompanyID)
	}
	if filter.JobTitle != "" {
		query = query.Where("LOWER(salaries.job_title) LIKE ?", "%"+strings.ToLower(filter.JobTitle)+"%")
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("salaries.experience_level = ?", filter.ExperienceLevel)
	}
	if filter.EmploymentType != "" {
		query = query.Where("salaries.employment_type = ?", filter.EmploymentType)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(salaries.location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.ExcludeLocation != "" {
		query = query.Where("LOWER(salaries.location) NOT LIKE ?", "%"+strings.ToLower(filter.ExcludeLocation)+"%")
	}
	if filter.Industry != "" {
		query = query.
			Joins("JOIN companies ON companies.id = salaries.company_id").
			Where("LOWER(companies.industry) LIKE ?", "%"+strings.ToLower(filter.Industry)+"%")
	}
	if filter.IndustryExact != "" {
		query = query.
			Joins("JOIN companies ON companies.id = salaries.company_id").
			Where("companies.industry = ?", filter.IndustryExact)
	}
	if filter.Currency != "" {
		query = query.Where("salaries.currency = ?", filter.Currency)
	}
	return query
}
