package services

import (
	"context"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SearchService interface {
	Search(ctx context.Context, db *gorm.DB, query string, skip, limit int) (*dto.SearchResponse, error)
}

type searchService struct {
	companyRepo repositories.CompanyRepository
	salaryRepo  repositories.SalaryRepository
	cache       cache.Cache
	cfg         *config.Config
}

func NewSearchService(
	companyRepo repositories.CompanyRepository,
	salaryRepo repositories.SalaryRepository,
	c cache.Cache,
	cfg *config.Config,
) SearchService {
	return &searchService{
		companyRepo: companyRepo,
		salaryRepo:  salaryRepo,
		cache:       c,
		cfg:         cfg,
	}
}

// Search matches companies by name, industry and location, plus job
// titles from the salary dataset.
func (s *searchService) Search(ctx context.Context, db *gorm.DB, query string, skip, limit int) (*dto.SearchResponse, error) {
	key := cache.SearchKey(query, skip, limit)
	var cached dto.SearchResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	companies, total, err := s.companyRepo.Search(db, query, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	titles, err := s.salaryRepo.DistinctJobTitles(db, query, 10)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	if titles == nil {
		titles = []string{}
	}

	result := &dto.SearchResponse{
		Companies: items,
		JobTitles: titles,
		Total:     total,
	}

	ttl := time.Duration(s.cfg.CacheTTL.SearchM) * time.Minute
	_ = s.cache.Set(ctx, key, result, ttl)
	return result, nil
}
