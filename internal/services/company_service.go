package services

import (
	"context"
	"errors"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/integrations"
	"iwork_backend/internal/logger"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetDetail(ctx context.Context, db *gorm.DB, companyID string) (*dto.CompanyDetailResponse, error)
	List(ctx context.Context, db *gorm.DB, filter repositories.CompanyFilter, skip, limit int) (*dto.Paginated[*dto.CompanyResponse], error)
	Update(ctx context.Context, db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, db *gorm.DB, companyID string) error
	TaxData(ctx context.Context, db *gorm.DB, companyID string) (*dto.TaxDataResponse, error)
}

type companyService struct {
	companyRepo repositories.CompanyRepository
	cache       cache.Cache
	stocks      *integrations.StockClient
	taxes       *integrations.TaxClient
	cfg         *config.Config
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	c cache.Cache,
	stocks *integrations.StockClient,
	taxes *integrations.TaxClient,
	cfg *config.Config,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		cache:       c,
		stocks:      stocks,
		taxes:       taxes,
		cfg:         cfg,
	}
}

func (s *companyService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Location:    req.Location,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
		FoundedYear: req.FoundedYear,
		IsPublic:    req.IsPublic,
		StockSymbol: req.StockSymbol,
		SecCIK:      req.SecCIK,
	}

	if err := s.companyRepo.Create(db, company); err != nil {
		return nil, apperrors.StorageError(err)
	}

	_ = s.cache.DeletePrefix(ctx, cache.SearchPrefix)
	return dto.NewCompanyResponse(company), nil
}

// GetDetail returns the company with its verified-review aggregate and,
// for public companies, a best-effort stock quote. A quote failure logs
// and drops the quote; the page still renders.
func (s *companyService) GetDetail(ctx context.Context, db *gorm.DB, companyID string) (*dto.CompanyDetailResponse, error) {
	key := cache.CompanyDetailKey(companyID)
	var cached dto.CompanyDetailResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, apperrors.StorageError(err)
	}

	avgRating, reviewCount, err := s.companyRepo.AverageRating(db, companyID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	detail := &dto.CompanyDetailResponse{
		CompanyResponse: *dto.NewCompanyResponse(company),
		AverageRating:   avgRating,
		ReviewCount:     reviewCount,
	}

	if company.IsPublic && company.StockSymbol != "" {
		quote, err := s.stocks.Quote(ctx, company.StockSymbol)
		if err != nil {
			logger.CtxWarn(ctx, "stock quote unavailable", "symbol", company.StockSymbol, "error", err)
		} else {
			detail.StockData = quote
		}
	}

	ttl := time.Duration(s.cfg.CacheTTL.CompanyDetailM) * time.Minute
	_ = s.cache.Set(ctx, key, detail, ttl)
	return detail, nil
}

func (s *companyService) List(ctx context.Context, db *gorm.DB, filter repositories.CompanyFilter, skip, limit int) (*dto.Paginated[*dto.CompanyResponse], error) {
	companies, total, err := s.companyRepo.FindAll(db, filter, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return dto.NewPaginated(items, total, skip, limit), nil
}

func (s *companyService) Update(ctx context.Context, db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, apperrors.StorageError(err)
	}

	applyCompanyUpdate(company, req)

	if err := s.companyRepo.Update(db, company); err != nil {
		return nil, apperrors.StorageError(err)
	}

	_ = s.cache.Delete(ctx, cache.CompanyDetailKey(companyID))
	_ = s.cache.DeletePrefix(ctx, cache.SearchPrefix)
	return dto.NewCompanyResponse(company), nil
}

func (s *companyService) Delete(ctx context.Context, db *gorm.DB, companyID string) error {
	if err := s.companyRepo.Delete(db, companyID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.NewNotFoundError("Company not found")
		}
		return apperrors.StorageError(err)
	}

	_ = s.cache.Delete(ctx, cache.CompanyDetailKey(companyID), cache.DashboardKey)
	_ = s.cache.DeletePrefix(ctx, cache.CompanyReviewsKeyPrefix(companyID))
	_ = s.cache.DeletePrefix(ctx, cache.CompanySalariesKeyPrefix(companyID))
	_ = s.cache.DeletePrefix(ctx, cache.SearchPrefix)
	return nil
}

func (s *companyService) TaxData(ctx context.Context, db *gorm.DB, companyID string) (*dto.TaxDataResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, apperrors.StorageError(err)
	}
	return s.taxes.CompanyTaxData(ctx, company.Name, company.SecCIK)
}

func applyCompanyUpdate(company *models.Company, req *dto.UpdateCompanyRequest) {
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.FoundedYear != nil {
		company.FoundedYear = *req.FoundedYear
	}
	if req.IsPublic != nil {
		company.IsPublic = *req.IsPublic
	}
	if req.StockSymbol != nil {
		company.StockSymbol = *req.StockSymbol
	}
	if req.SecCIK != nil {
		company.SecCIK = *req.SecCIK
	}
}
