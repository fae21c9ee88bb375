package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iwork_backend/internal/cache"
	"iwork_backend/internal/config"
	"iwork_backend/internal/email"
	"iwork_backend/internal/logger"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/scanner"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, reviewID, requesterID string, isAdmin bool) (*dto.ReviewResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, reviewID string, isAdmin bool) error
	ListForCompany(ctx context.Context, db *gorm.DB, companyID string, skip, limit int, includeFiles bool) (*dto.Paginated[*dto.ReviewResponse], error)
	ListMine(ctx context.Context, db *gorm.DB, userID string, skip, limit int) (*dto.Paginated[*dto.ReviewResponse], error)
	ListPending(ctx context.Context, db *gorm.DB, skip, limit int) (*dto.Paginated[*dto.ReviewResponse], error)
	Moderate(ctx context.Context, db *gorm.DB, reviewID string, req *dto.ModerateReviewRequest) (*dto.ReviewResponse, error)
	Rescan(ctx context.Context, db *gorm.DB, reviewID string) (*dto.RescanReviewResponse, error)
}

type reviewService struct {
	reviewRepo   repositories.ReviewRepository
	companyRepo  repositories.CompanyRepository
	settingsRepo repositories.SettingsRepository
	cache        cache.Cache
	scanner      scanner.Scanner
	emails       email.Provider
	cfg          *config.Config
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	companyRepo repositories.CompanyRepository,
	settingsRepo repositories.SettingsRepository,
	c cache.Cache,
	sc scanner.Scanner,
	emails email.Provider,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		companyRepo:  companyRepo,
		settingsRepo: settingsRepo,
		cache:        c,
		scanner:      sc,
		emails:       emails,
		cfg:          cfg,
	}
}

func (s *reviewService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := ValidateEmploymentDates(req.EmploymentStartDate, req.EmploymentEndDate); err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByID(db, req.CompanyID); err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("Company not found")
		}
		return nil, apperrors.StorageError(err)
	}

	review := &models.Review{
		UserID:              userID,
		CompanyID:           req.CompanyID,
		Rating:              req.Rating,
		EmployeeStatus:      models.EmployeeStatus(req.EmployeeStatus),
		EmploymentStartDate: req.EmploymentStartDate,
		EmploymentEndDate:   req.EmploymentEndDate,
		Pros:                req.Pros,
		Cons:                req.Cons,
		Recommendations:     req.Recommendations,
		IsAnonymous:         req.IsAnonymous,
		Status:              models.ReviewStatusPending,
	}

	flags := s.screen(ctx, review.ScannableContent())

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		return s.reviewRepo.ReplaceFlags(tx, review.ID, flags)
	})
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateReviewCaches(ctx, review.CompanyID)

	created, err := s.reviewRepo.FindByID(db, review.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.NewReviewResponse(created), nil
}

func (s *reviewService) GetByID(ctx context.Context, db *gorm.DB, reviewID, requesterID string, isAdmin bool) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewNotFoundError("Review not found")
		}
		return nil, apperrors.StorageError(err)
	}

	// Unpublished reviews are visible only to their owner and moderators.
	if review.Status != models.ReviewStatusVerified && review.UserID != requesterID && !isAdmin {
		return nil, apperrors.NewNotFoundError("Review not found")
	}

	if review.UserID == requesterID || isAdmin {
		return dto.NewReviewResponse(review), nil
	}
	return dto.NewPublicReviewResponse(review), nil
}

func (s *reviewService) Update(ctx context.Context, db *gorm.DB, userID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewNotFoundError("Review not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if review.UserID != userID {
		return nil, apperrors.NewForbiddenError("You can only edit your own reviews")
	}
	if review.Status == models.ReviewStatusVerified {
		return nil, apperrors.NewInvalidStateError("Verified reviews cannot be edited")
	}

	contentChanged := applyReviewUpdate(review, req)

	// The merged range is checked so an update cannot move one end of an
	// existing range past the other.
	if err := ValidateEmploymentDates(review.EmploymentStartDate, review.EmploymentEndDate); err != nil {
		return nil, err
	}

	var flags []models.AIScannerFlag
	if contentChanged {
		// Any content edit re-enters moderation from scratch.
		review.Status = models.ReviewStatusPending
		review.ModerationNotes = ""
		flags = s.screen(ctx, review.ScannableContent())
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Update(tx, review); err != nil {
			return err
		}
		if contentChanged {
			return s.reviewRepo.ReplaceFlags(tx, review.ID, flags)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateReviewCaches(ctx, review.CompanyID)

	updated, err := s.reviewRepo.FindByID(db, review.ID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return dto.NewReviewResponse(updated), nil
}

func (s *reviewService) Delete(ctx context.Context, db *gorm.DB, userID, reviewID string, isAdmin bool) error {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.NewNotFoundError("Review not found")
		}
		return apperrors.StorageError(err)
	}

	if review.UserID != userID && !isAdmin {
		return apperrors.NewForbiddenError("You can only delete your own reviews")
	}

	if err := s.reviewRepo.Delete(db, reviewID); err != nil {
		return apperrors.StorageError(err)
	}

	s.invalidateReviewCaches(ctx, review.CompanyID)
	return nil
}

func (s *reviewService) ListForCompany(ctx context.Context, db *gorm.DB, companyID string, skip, limit int, includeFiles bool) (*dto.Paginated[*dto.ReviewResponse], error) {
	key := cache.CompanyReviewsKey(companyID, skip, limit, includeFiles)
	var cached dto.Paginated[*dto.ReviewResponse]
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	reviews, total, err := s.reviewRepo.FindByCompany(db, companyID, models.ReviewStatusVerified, limit, skip, includeFiles)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewPublicReviewResponse(&reviews[i]))
	}
	result := dto.NewPaginated(items, total, skip, limit)

	ttl := time.Duration(s.cfg.CacheTTL.CompanyReviewsM) * time.Minute
	_ = s.cache.Set(ctx, key, result, ttl)
	return result, nil
}

func (s *reviewService) ListMine(ctx context.Context, db *gorm.DB, userID string, skip, limit int) (*dto.Paginated[*dto.ReviewResponse], error) {
	reviews, total, err := s.reviewRepo.FindByUser(db, userID, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(items, total, skip, limit), nil
}

func (s *reviewService) ListPending(ctx context.Context, db *gorm.DB, skip, limit int) (*dto.Paginated[*dto.ReviewResponse], error) {
	reviews, total, err := s.reviewRepo.FindByStatus(db, models.ReviewStatusPending, limit, skip)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(items, total, skip, limit), nil
}

func (s *reviewService) Moderate(ctx context.Context, db *gorm.DB, reviewID string, req *dto.ModerateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewNotFoundError("Review not found")
		}
		return nil, apperrors.StorageError(err)
	}

	target := models.ReviewStatus(req.Status)
	if err := ValidateModeration(review.Status, target, req.ModerationNotes); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.UpdateStatus(db, reviewID, target, req.ModerationNotes); err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateReviewCaches(ctx, review.CompanyID)

	updated, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.notifyModerationOutcome(ctx, db, updated)
	return dto.NewReviewResponse(updated), nil
}

// Rescan re-runs content screening on demand and replaces the review's
// flags with the fresh findings. Unlike the submission-time screen this is
// not best-effort: a scanner failure surfaces to the caller.
func (s *reviewService) Rescan(ctx context.Context, db *gorm.DB, reviewID string) (*dto.RescanReviewResponse, error) {
	if s.scanner == nil {
		return nil, apperrors.NewInvalidStateError("Content scanner is disabled")
	}

	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.NewNotFoundError("Review not found")
		}
		return nil, apperrors.StorageError(err)
	}

	result, err := s.scanner.Scan(ctx, review.ScannableContent())
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError("scanner", err)
	}

	flags := flagsFromResult(result)
	if err := s.reviewRepo.ReplaceFlags(db, review.ID, flags); err != nil {
		return nil, apperrors.StorageError(err)
	}

	s.invalidateReviewCaches(ctx, review.CompanyID)

	scanResults := make(map[string][]string)
	for _, category := range scanner.Categories {
		if matches := result.Findings[category]; len(matches) > 0 {
			scanResults[string(category)] = matches
		}
	}

	verdict := "no"
	if result.IsSafe() {
		verdict = "yes"
	}
	return &dto.RescanReviewResponse{
		ReviewID:    review.ID,
		IsSafe:      verdict,
		HasFlags:    len(flags) > 0,
		FlagsCount:  len(flags),
		ScanResults: scanResults,
		Message:     fmt.Sprintf("Review %s scanned. Found %d potential issues.", review.ID, len(flags)),
	}, nil
}

// ValidateEmploymentDates rejects ranges where employment ends before it
// began. Open-ended ranges pass.
func ValidateEmploymentDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.NewValidationError("Employment end date cannot be before the start date")
	}
	return nil
}

// ValidateModeration checks a moderation request against the review
// lifecycle: only pending reviews transition, only to verified or
// rejected, and a rejection must carry notes for the author.
func ValidateModeration(current, target models.ReviewStatus, notes string) error {
	if target != models.ReviewStatusVerified && target != models.ReviewStatusRejected {
		return apperrors.NewInvalidTransitionError("Reviews can only be verified or rejected")
	}
	if current != models.ReviewStatusPending {
		return apperrors.NewInvalidTransitionError("Only pending reviews can be moderated")
	}
	if target == models.ReviewStatusRejected && notes == "" {
		return apperrors.NewValidationError("Rejection requires moderation notes")
	}
	return nil
}

// applyReviewUpdate copies set fields onto the review and reports whether
// any moderated content (rating or free text) changed.
func applyReviewUpdate(review *models.Review, req *dto.UpdateReviewRequest) bool {
	contentChanged := false

	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		contentChanged = true
	}
	if req.Pros != nil && *req.Pros != review.Pros {
		review.Pros = *req.Pros
		contentChanged = true
	}
	if req.Cons != nil && *req.Cons != review.Cons {
		review.Cons = *req.Cons
		contentChanged = true
	}
	if req.Recommendations != nil && *req.Recommendations != review.Recommendations {
		review.Recommendations = *req.Recommendations
		contentChanged = true
	}

	if req.EmployeeStatus != nil {
		review.EmployeeStatus = models.EmployeeStatus(*req.EmployeeStatus)
	}
	if req.EmploymentStartDate != nil {
		review.EmploymentStartDate = req.EmploymentStartDate
	}
	if req.EmploymentEndDate != nil {
		review.EmploymentEndDate = req.EmploymentEndDate
	}
	if req.IsAnonymous != nil {
		review.IsAnonymous = *req.IsAnonymous
	}

	return contentChanged
}

// screen runs the content scanner and converts findings to flag rows.
// Screening is best-effort: a scanner failure logs and yields no flags so
// submissions are never blocked on moderation tooling.
func (s *reviewService) screen(ctx context.Context, content string) []models.AIScannerFlag {
	if s.scanner == nil {
		return nil
	}

	result, err := s.scanner.Scan(ctx, content)
	if err != nil {
		logger.CtxWarn(ctx, "content scan failed, proceeding without flags", "error", err)
		return nil
	}
	return flagsFromResult(result)
}

// flagsFromResult converts scan findings to flag rows in category order.
func flagsFromResult(result *scanner.Result) []models.AIScannerFlag {
	var flags []models.AIScannerFlag
	for _, category := range scanner.Categories {
		for _, match := range result.Findings[category] {
			flags = append(flags, models.AIScannerFlag{
				FlagType:        string(category),
				FlagDescription: scanner.Descriptions[category],
				FlaggedText:     match,
			})
		}
	}
	return flags
}

// invalidateReviewCaches evicts every cached surface a review write can
// affect. Runs after commit; a failed eviction only shortens freshness to
// the TTL backstop.
func (s *reviewService) invalidateReviewCaches(ctx context.Context, companyID string) {
	_ = s.cache.Delete(ctx, cache.CompanyDetailKey(companyID), cache.DashboardKey)
	_ = s.cache.DeletePrefix(ctx, cache.CompanyReviewsKeyPrefix(companyID))
}

// notifyModerationOutcome emails the author about the decision, honoring
// their notification settings. Fire-and-forget: delivery failures log and
// never affect the moderation response.
func (s *reviewService) notifyModerationOutcome(ctx context.Context, db *gorm.DB, review *models.Review) {
	if !s.cfg.Email.Enabled {
		return
	}

	settings, err := s.settingsRepo.FindByUserID(db, review.UserID)
	if err != nil && !errors.Is(err, repositories.ErrSettingsNotFound) {
		logger.CtxWarn(ctx, "failed to load notification settings", "user_id", review.UserID, "error", err)
		return
	}
	// Missing settings row means defaults: notifications on.
	if settings != nil {
		if !settings.EmailNotificationsEnabled {
			return
		}
		if review.Status == models.ReviewStatusVerified && !settings.NotifyOnReviewApproval {
			return
		}
		if review.Status == models.ReviewStatusRejected && !settings.NotifyOnReviewRejection {
			return
		}
	}

	data := email.ModerationMailData{
		Name:        review.User.FullName(),
		CompanyName: review.Company.Name,
		Notes:       review.ModerationNotes,
	}

	var subject, body string
	switch review.Status {
	case models.ReviewStatusVerified:
		subject = "Your review has been published"
		body, err = email.RenderReviewApproved(data)
	case models.ReviewStatusRejected:
		subject = "Your review was not published"
		body, err = email.RenderReviewRejected(data)
	default:
		return
	}
	if err != nil {
		logger.CtxWarn(ctx, "failed to render moderation email", "error", err)
		return
	}

	to := review.User.Email
	go func() {
		if err := s.emails.Send(to, subject, body); err != nil {
			logger.Warn("moderation email delivery failed", "to", to, "error", err)
		}
	}()
}
