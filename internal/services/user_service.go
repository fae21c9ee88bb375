package services

import (
	"context"
	"errors"

	"iwork_backend/internal/auth"
	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	Deactivate(ctx context.Context, db *gorm.DB, userID string) error
}

type userService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewUserService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) UserService {
	return &userService{userRepo: userRepo, tokenRepo: tokenRepo}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.StorageError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.JobTitle != nil {
		fields["job_title"] = *req.JobTitle
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.NewNotFoundError("User not found")
			}
			return nil, apperrors.StorageError(err)
		}
	}
	return s.GetProfile(ctx, db, userID)
}

func (s *userService) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		return apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewForbiddenError("Current password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Password change invalidates every open session.
	return wrapStorage(db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateFields(tx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
			return err
		}
		return s.tokenRepo.RevokeAllForUser(tx, userID)
	}))
}

func (s *userService) Deactivate(ctx context.Context, db *gorm.DB, userID string) error {
	return wrapStorage(db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateFields(tx, userID, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		return s.tokenRepo.RevokeAllForUser(tx, userID)
	}))
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.StorageError(err)
}
