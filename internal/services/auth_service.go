package services

import (
	"context"
	"errors"
	"time"

	"iwork_backend/internal/auth"
	"iwork_backend/internal/config"
	"iwork_backend/internal/logger"
	"iwork_backend/internal/models"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.TokenPair, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
}

type authService struct {
	userRepo     repositories.UserRepository
	tokenRepo    repositories.RefreshTokenRepository
	settingsRepo repositories.SettingsRepository
	cfg          *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	settingsRepo repositories.SettingsRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		JobTitle:     req.JobTitle,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.settingsRepo.Create(tx, &models.AccountSettings{
			UserID:                    user.ID,
			EmailNotificationsEnabled: true,
			NotifyOnReviewApproval:    true,
			NotifyOnReviewRejection:   true,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.New(apperrors.CodeEmailAlreadyExists, "auth", "Email is already registered", 409)
		}
		return nil, apperrors.StorageError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	tokens, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.StorageError(err)
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	tokens, err := s.issueTokens(db, user)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Tokens: tokens}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// new pair is issued. A revoked or expired token yields 401.
func (s *authService) Refresh(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.TokenPair, error) {
	stored, err := s.tokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, apperrors.StorageError(err)
	}

	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.NewUnauthorizedError("Refresh token is expired or revoked")
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is deactivated")
	}

	var tokens *dto.TokenPair
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.Revoke(tx, refreshToken); err != nil {
			return err
		}
		var issueErr error
		tokens, issueErr = s.issueTokens(tx, user)
		return issueErr
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.StorageError(err)
	}
	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	err := s.tokenRepo.Revoke(db, refreshToken)
	if err != nil && !errors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.StorageError(err)
	}
	// Logout with an unknown token still succeeds; the session is gone
	// either way.
	return nil
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.TokenPair, error) {
	accessTTL := time.Duration(s.cfg.JWT.TTL) * time.Minute
	accessToken, err := auth.GenerateToken(user, s.cfg.JWT.Secret, accessTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := auth.NewRefreshToken()
	refreshTTL := time.Duration(s.cfg.JWT.RefreshTTL) * time.Hour
	err = s.tokenRepo.Create(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTTL),
	})
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
}
