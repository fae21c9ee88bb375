package services

import (
	"context"
	"errors"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SalaryService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateSalaryRequest) (*dto.SalaryResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID, salaryID string, req *dto.UpdateSalaryRequest) (*dto.SalaryResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, salaryID string, isAdmin bool) error
	ListForCompany(ctx context.Context, db *gorm.DB, companyID string, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error)
	ListMine(ctx context.Context, db *gorm.DB, userID string, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error)
	ListAll(ctx context.Context, db *gorm.DB, filter *dto.AdminSalaryFilter, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error)
}

type salaryService struct {
	salaryRepo  repositories.SalaryRepository
	companyRepo repositories.CompanyRepository
	cache       cache.Cache
	cfg         *config.Config
}

func NewSalaryService(
	salaryRepo repositories.SalaryRepository,
	companyRepo repositories.CompanyRepository,
	c cache.Cache,
	cfg *config.Config,
) SalaryService {
	return &salaryService{
		salaryRepo:  salaryRepo,
		companyRepo: companyRepo,
		cache:       c,
		cfg:         cfg,
	}
}

func (s *salaryService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateSalaryRequest) (*dto.SalaryResponse, error) {
	if _, err := s.companyRepo.FindByID(db, req.CompanyID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, apperrors.StorageError(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	salary := &models.Salary{
		UserID:          userID,
		CompanyID:       req.CompanyID,
		JobTitle:        req.JobTitle,
		Amount:          req.Amount,
		Currency:        currency,
		ExperienceLevel: req.ExperienceLevel,
		EmploymentType:  req.EmploymentType,
		Location:        req.Location,
		IsAnonymous:     req.IsAnonymous,
	}

	if err := s.salaryRepo.Create(db, salary); err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateSalaryCaches(ctx, salary.CompanyID)

	created, err := s.salaryRepo.FindByID(db, salary.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.NewSalaryResponse(created), nil
}

func (s *salaryService) Update(ctx context.Context, db *gorm.DB, userID, salaryID string, req *dto.UpdateSalaryRequest) (*dto.SalaryResponse, error) {
	salary, err := s.salaryRepo.FindByID(db, salaryID)
	if err != nil {
		if errors.Is(err, repositories.ErrSalaryNotFound) {
			return nil, apperrors.NewNotFoundError("Salary record not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if salary.UserID != userID {
		return nil, apperrors.NewForbiddenError("You can only edit your own salary records")
	}

	applySalaryUpdate(salary, req)

	if err := s.salaryRepo.Update(db, salary); err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateSalaryCaches(ctx, salary.CompanyID)

	updated, err := s.salaryRepo.FindByID(db, salary.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.NewSalaryResponse(updated), nil
}

func (s *salaryService) Delete(ctx context.Context, db *gorm.DB, userID, salaryID string, isAdmin bool) error {
	salary, err := s.salaryRepo.FindByID(db, salaryID)
	if err != nil {
		if errors.Is(err, repositories.ErrSalaryNotFound) {
			return apperrors.NewNotFoundError("Salary record not found")
		}
		return apperrors.StorageError(err)
	}

	if salary.UserID != userID && !isAdmin {
		return apperrors.NewForbiddenError("You can only delete your own salary records")
	}

	if err := s.salaryRepo.Delete(db, salaryID); err != nil {
		return apperrors.StorageError(err)
	}

	s.invalidateSalaryCaches(ctx, salary.CompanyID)
	return nil
}

func (s *salaryService) ListForCompany(ctx context.Context, db *gorm.DB, companyID string, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error) {
	key := cache.CompanySalariesKey(companyID, skip, limit)
	var cached dto.Paginated[*dto.SalaryResponse]
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	salaries, total, err := s.salaryRepo.FindByCompany(db, companyID, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.SalaryResponse, 0, len(salaries))
	for i := range salaries {
		items = append(items, dto.NewSalaryResponse(&salaries[i]))
	}
	result := dto.NewPaginated(items, total, skip, limit)

	ttl := time.Duration(s.cfg.CacheTTL.CompanySalaryM) * time.Minute
	_ = s.cache.Set(ctx, key, result, ttl)
	return result, nil
}

func (s *salaryService) ListMine(ctx context.Context, db *gorm.DB, userID string, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error) {
	salaries, total, err := s.salaryRepo.FindByUser(db, userID, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.SalaryResponse, 0, len(salaries))
	for i := range salaries {
		items = append(items, dto.NewSalaryResponse(&salaries[i]))
	}
	return dto.NewPaginated(items, total, skip, limit), nil
}

func (s *salaryService) ListAll(ctx context.Context, db *gorm.DB, filter *dto.AdminSalaryFilter, skip, limit int) (*dto.Paginated[*dto.SalaryResponse], error) {
	key := cache.AdminSalariesKey(skip, limit, filter.CompanyID+":"+filter.JobTitle+":"+filter.ExperienceLevel+":"+filter.Location)
	var cached dto.Paginated[*dto.SalaryResponse]
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	repoFilter := repositories.SalaryFilter{
		CompanyID:       filter.CompanyID,
		JobTitle:        filter.JobTitle,
		ExperienceLevel: filter.ExperienceLevel,
		Location:        filter.Location,
	}
	salaries, total, err := s.salaryRepo.FindAll(db, repoFilter, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.SalaryResponse, 0, len(salaries))
	for i := range salaries {
		items = append(items, dto.NewSalaryResponse(&salaries[i]))
	}
	result := dto.NewPaginated(items, total, skip, limit)

	ttl := time.Duration(s.cfg.CacheTTL.AdminSalariesM) * time.Minute
	_ = s.cache.Set(ctx, key, result, ttl)
	return result, nil
}

func applySalaryUpdate(salary *models.Salary, req *dto.UpdateSalaryRequest) {
	if req.JobTitle != nil {
		salary.JobTitle = *req.JobTitle
	}
	if req.Amount != nil {
		salary.Amount = *req.Amount
	}
	if req.Currency != nil {
		salary.Currency = *req.Currency
	}
	if req.ExperienceLevel != nil {
		salary.ExperienceLevel = *req.ExperienceLevel
	}
	if req.EmploymentType != nil {
		salary.EmploymentType = *req.EmploymentType
	}
	if req.Location != nil {
		salary.Location = *req.Location
	}
	if req.IsAnonymous != nil {
		salary.IsAnonymous = *req.IsAnonymous
	}
}

// invalidateSalaryCaches evicts every surface a salary write can affect:
// the company's salary pages, all aggregate statistics, and admin views.
func (s *salaryService) invalidateSalaryCaches(ctx context.Context, companyID string) {
	_ = s.cache.Delete(ctx, cache.CompanyDetailKey(companyID), cache.DashboardKey)
	_ = s.cache.DeletePrefix(ctx, cache.CompanySalariesKeyPrefix(companyID))
	_ = s.cache.DeletePrefix(ctx, cache.StatisticsPrefix)
	_ = s.cache.DeletePrefix(ctx, cache.AdminSalariesPrefix)
}
