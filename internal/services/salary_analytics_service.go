package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// decileMinSample gates p10/p90: below this the outer deciles are noise.
const decileMinSample = 10

// topBucketLimit caps the location and industry partitions of a breakdown.
const topBucketLimit = 5

type SalaryAnalyticsService interface {
	Statistics(ctx context.Context, db *gorm.DB, req *dto.StatisticsRequest) (*dto.StatisticsResponse, error)
	Breakdown(ctx context.Context, db *gorm.DB, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error)
	Compare(ctx context.Context, db *gorm.DB, req *dto.CompareRequest) (*dto.CompareResponse, error)
}

type salaryAnalyticsService struct {
	salaryRepo  repositories.SalaryRepository
	companyRepo repositories.CompanyRepository
	cache       cache.Cache
	cfg         *config.Config
}

func NewSalaryAnalyticsService(
	salaryRepo repositories.SalaryRepository,
	companyRepo repositories.CompanyRepository,
	c cache.Cache,
	cfg *config.Config,
) SalaryAnalyticsService {
	return &salaryAnalyticsService{
		salaryRepo:  salaryRepo,
		companyRepo: companyRepo,
		cache:       c,
		cfg:         cfg,
	}
}

func (s *salaryAnalyticsService) Statistics(ctx context.Context, db *gorm.DB, req *dto.StatisticsRequest) (*dto.StatisticsResponse, error) {
	key := cache.StatisticsKey(req.JobTitle, req.ExperienceLevel, req.Location)
	var cached dto.StatisticsResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	amounts, err := s.salaryRepo.FindAmounts(db, repositories.SalaryFilter{
		JobTitle:        req.JobTitle,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
	})
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	result := Summarize(amounts)

	ttl := time.Duration(s.cfg.CacheTTL.StatisticsM) * time.Minute
	_ = s.cache.Set(ctx, key, result, ttl)
	return result, nil
}

// Breakdown composes statistics across five partitionings of the filtered
// sample: overall, per experience level, per employment type, top-5
// locations and top-5 industries by sample count. Partitions with no data
// are left out.
func (s *salaryAnalyticsService) Breakdown(ctx context.Context, db *gorm.DB, req *dto.BreakdownRequest) (*dto.BreakdownResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	base := repositories.SalaryFilter{
		JobTitle:  req.JobTitle,
		CompanyID: req.CompanyID,
		Industry:  req.Industry,
		Location:  req.Location,
		Currency:  currency,
	}

	overall, err := s.summarizeFilter(db, base)
	if err != nil {
		return nil, err
	}

	byLevel := make(map[string]*dto.StatisticsResponse)
	for _, level := range models.ExperienceLevels {
		f := base
		f.ExperienceLevel = level
		stats, err := s.summarizeFilter(db, f)
		if err != nil {
			return nil, err
		}
		if stats.Count > 0 {
			byLevel[level] = stats
		}
	}

	byType := make(map[string]*dto.StatisticsResponse)
	for _, empType := range models.EmploymentTypes {
		f := base
		f.EmploymentType = empType
		stats, err := s.summarizeFilter(db, f)
		if err != nil {
			return nil, err
		}
		if stats.Count > 0 {
			byType[empType] = stats
		}
	}

	locationStats, err := s.salaryRepo.GroupTopByLocation(db, base, topBucketLimit)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	industryStats, err := s.salaryRepo.GroupTopByIndustry(db, base, topBucketLimit)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.BreakdownResponse{
		Overall:           overall,
		ByExperienceLevel: byLevel,
		ByEmploymentType:  byType,
		LocationBreakdown: groupStatsMap(locationStats),
		IndustryBreakdown: groupStatsMap(industryStats),
		Currency:          currency,
	}, nil
}

// Compare contrasts a company against the rest of its industry and/or a
// location against everywhere else, within one job title. A comparison is
// produced only when both sides have samples.
func (s *salaryAnalyticsService) Compare(ctx context.Context, db *gorm.DB, req *dto.CompareRequest) (*dto.CompareResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	base := repositories.SalaryFilter{
		JobTitle:        req.JobTitle,
		ExperienceLevel: req.ExperienceLevel,
		EmploymentType:  req.EmploymentType,
		Currency:        currency,
	}

	result := &dto.CompareResponse{
		JobTitle: req.JobTitle,
		Currency: currency,
	}

	if req.CompanyID != "" {
		comparison, err := s.compareCompany(db, base, req.CompanyID)
		if err != nil {
			return nil, err
		}
		result.CompanyComparison = comparison
	}

	if req.Location != "" {
		comparison, err := s.compareLocation(db, base, req.Location)
		if err != nil {
			return nil, err
		}
		result.LocationComparison = comparison
	}

	return result, nil
}

// compareCompany pits the company's pay against same-industry companies,
// excluding the company itself to avoid self-comparison bias.
func (s *salaryAnalyticsService) compareCompany(db *gorm.DB, base repositories.SalaryFilter, companyID string) (*dto.CompanyComparison, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, nil
		}
		return nil, apperrors.StorageError(err)
	}

	companyFilter := base
	companyFilter.CompanyID = companyID
	companyAmounts, err := s.salaryRepo.FindAmounts(db, companyFilter)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	industryFilter := base
	industryFilter.IndustryExact = company.Industry
	industryFilter.ExcludeCompanyID = companyID
	industryAmounts, err := s.salaryRepo.FindAmounts(db, industryFilter)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	if len(companyAmounts) == 0 || len(industryAmounts) == 0 {
		return nil, nil
	}

	companyAvg := average(companyAmounts)
	industryAvg := average(industryAmounts)
	diff := PercentDifference(companyAvg, industryAvg)

	return &dto.CompanyComparison{
		CompanyName:        company.Name,
		CompanyAvgSalary:   round2(companyAvg),
		CompanySampleSize:  int64(len(companyAmounts)),
		IndustryName:       company.Industry,
		IndustryAvgSalary:  round2(industryAvg),
		IndustrySampleSize: int64(len(industryAmounts)),
		PercentDifference:  diff,
		IsAboveIndustryAvg: diff > 0,
	}, nil
}

// compareLocation pits one location against all records outside it.
func (s *salaryAnalyticsService) compareLocation(db *gorm.DB, base repositories.SalaryFilter, location string) (*dto.LocationComparison, error) {
	locationFilter := base
	locationFilter.Location = location
	locationAmounts, err := s.salaryRepo.FindAmounts(db, locationFilter)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	nationalFilter := base
	nationalFilter.ExcludeLocation = location
	nationalAmounts, err := s.salaryRepo.FindAmounts(db, nationalFilter)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	if len(locationAmounts) == 0 || len(nationalAmounts) == 0 {
		return nil, nil
	}

	locationAvg := average(locationAmounts)
	nationalAvg := average(nationalAmounts)
	diff := PercentDifference(locationAvg, nationalAvg)

	return &dto.LocationComparison{
		LocationName:       location,
		LocationAvgSalary:  round2(locationAvg),
		LocationSampleSize: int64(len(locationAmounts)),
		NationalAvgSalary:  round2(nationalAvg),
		NationalSampleSize: int64(len(nationalAmounts)),
		PercentDifference:  diff,
		IsAboveNationalAvg: diff > 0,
	}, nil
}

func (s *salaryAnalyticsService) summarizeFilter(db *gorm.DB, filter repositories.SalaryFilter) (*dto.StatisticsResponse, error) {
	amounts, err := s.salaryRepo.FindAmounts(db, filter)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return Summarize(amounts), nil
}

// Summarize computes the descriptive statistics for a sample. Median and
// quartiles require a non-empty sample; p10/p90 require at least ten
// points.
func Summarize(amounts []float64) *dto.StatisticsResponse {
	resp := &dto.StatisticsResponse{Count: int64(len(amounts))}
	if len(amounts) == 0 {
		return resp
	}

	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)

	resp.Average = ptr(round2(average(sorted)))
	resp.Min = ptr(sorted[0])
	resp.Max = ptr(sorted[len(sorted)-1])
	resp.Median = ptr(round2(quantileExclusive(sorted, 0.5)))
	resp.P25 = ptr(round2(quantileExclusive(sorted, 0.25)))
	resp.P75 = ptr(round2(quantileExclusive(sorted, 0.75)))

	if len(sorted) >= decileMinSample {
		resp.P10 = ptr(round2(quantileExclusive(sorted, 0.10)))
		resp.P90 = ptr(round2(quantileExclusive(sorted, 0.90)))
	}
	return resp
}

// PercentDifference is the subgroup's relative deviation from the
// reference average, rounded to two decimals.
func PercentDifference(subgroupAvg, referenceAvg float64) float64 {
	if referenceAvg == 0 {
		return 0
	}
	return round2((subgroupAvg - referenceAvg) / referenceAvg * 100)
}

// quantileExclusive interpolates the p-th quantile of a sorted sample
// using the exclusive method: the rank is h = p*(n+1), clamped to the
// sample ends, with linear interpolation between neighbors.
func quantileExclusive(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	h := p * float64(n+1)
	if h <= 1 {
		return sorted[0]
	}
	if h >= float64(n) {
		return sorted[n-1]
	}

	k := int(math.Floor(h))
	frac := h - float64(k)
	return sorted[k-1] + frac*(sorted[k]-sorted[k-1])
}

func average(amounts []float64) float64 {
	if len(amounts) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range amounts {
		sum += v
	}
	return sum / float64(len(amounts))
}

func groupStatsMap(stats []repositories.GroupedStat) map[string]dto.GroupStats {
	out := make(map[string]dto.GroupStats, len(stats))
	for _, st := range stats {
		if st.Count == 0 {
			continue
		}
		out[st.Key] = dto.GroupStats{
			AvgSalary: round2(st.Average),
			MinSalary: st.Min,
			MaxSalary: st.Max,
			Count:     st.Count,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
