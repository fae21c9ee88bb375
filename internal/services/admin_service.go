package services

import (
	"context"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error)
	DuplicateSalaries(ctx context.Context, db *gorm.DB, timeWindowDays int) (*dto.DuplicateSalariesResponse, error)
}

type adminService struct {
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	reviewRepo  repositories.ReviewRepository
	salaryRepo  repositories.SalaryRepository
	cache       cache.Cache
	cfg         *config.Config
}

func NewAdminService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	reviewRepo repositories.ReviewRepository,
	salaryRepo repositories.SalaryRepository,
	c cache.Cache,
	cfg *config.Config,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		reviewRepo:  reviewRepo,
		salaryRepo:  salaryRepo,
		cache:       c,
		cfg:         cfg,
	}
}

// Dashboard aggregates platform counters and the head of the moderation
// queue.
func (s *adminService) Dashboard(ctx context.Context, db *gorm.DB) (*dto.DashboardResponse, error) {
	var cached dto.DashboardResponse
	if hit, _ := s.cache.Get(ctx, cache.DashboardKey, &cached); hit {
		return &cached, nil
	}

	resp := &dto.DashboardResponse{}
	var err error

	if resp.TotalUsers, err = s.userRepo.Count(db); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.TotalCompanies, err = s.companyRepo.Count(db); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.TotalReviews, err = s.reviewRepo.Count(db); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.TotalSalaries, err = s.salaryRepo.Count(db); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.PendingReviews, err = s.reviewRepo.CountByStatus(db, models.ReviewStatusPending); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.VerifiedReviews, err = s.reviewRepo.CountByStatus(db, models.ReviewStatusVerified); err != nil {
		return nil, apperrors.StorageError(err)
	}
	if resp.RejectedReviews, err = s.reviewRepo.CountByStatus(db, models.ReviewStatusRejected); err != nil {
		return nil, apperrors.StorageError(err)
	}

	pending, _, err := s.reviewRepo.FindByStatus(db, models.ReviewStatusPending, 5, 0)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	resp.RecentReviews = make([]*dto.ReviewResponse, 0, len(pending))
	for i := range pending {
		resp.RecentReviews = append(resp.RecentReviews, dto.NewReviewResponse(&pending[i]))
	}

	ttl := time.Duration(s.cfg.CacheTTL.DashboardM) * time.Minute
	_ = s.cache.Set(ctx, cache.DashboardKey, resp, ttl)
	return resp, nil
}

// DuplicateSalaries surfaces suspected repeat submissions: groups of two or
// more records from the same user for the same company and job title inside
// the time window.
func (s *adminService) DuplicateSalaries(ctx context.Context, db *gorm.DB, timeWindowDays int) (*dto.DuplicateSalariesResponse, error) {
	if timeWindowDays <= 0 {
		timeWindowDays = 30
	}
	since := time.Now().AddDate(0, 0, -timeWindowDays)

	groups, err := s.salaryRepo.FindDuplicateGroups(db, since)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	resultGroups := make([][]dto.DuplicateSalaryEntry, 0, len(groups))
	for _, group := range groups {
		entries := make([]dto.DuplicateSalaryEntry, 0, len(group))
		for i := range group {
			sal := &group[i]
			entries = append(entries, dto.DuplicateSalaryEntry{
				ID:              sal.ID,
				UserID:          sal.UserID,
				UserEmail:       sal.User.Email,
				CompanyID:       sal.CompanyID,
				CompanyName:     sal.Company.Name,
				JobTitle:        sal.JobTitle,
				Amount:          sal.Amount,
				Currency:        sal.Currency,
				ExperienceLevel: sal.ExperienceLevel,
				EmploymentType:  sal.EmploymentType,
				CreatedAt:       sal.CreatedAt,
			})
		}
		resultGroups = append(resultGroups, entries)
	}

	return &dto.DuplicateSalariesResponse{
		DuplicateGroups: resultGroups,
		TotalGroups:     len(resultGroups),
		TimeWindowDays:  timeWindowDays,
	}, nil
}
