package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

const (
	methodGetUserProfile       = "GetUserProfile"
	methodUpdateProfile        = "UpdateProfile"
	methodMarkNotificationRead = "MarkNotificationRead"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgUpdatingProfile     = "updating user profile"
	msgProfileUpdated      = "user profile successfully updated"
	msgMarkingNotification = "marking notification as read"

	msgErrFindingUserByID    = "failed to find user by ID"
	msgErrUpdatingProfile    = "failed to update profile"
	msgErrMarkingNotifRead   = "failed to mark notification as read"
	msgErrInvalidProfileYear = "profile year outside accepted range"

	errCtxValidatingUserID    = "validating user ID"
	errCtxFetchingProfile     = "fetching user profile"
	errCtxValidatingProfile   = "validating profile"
	errCtxUpdatingProfile     = "updating profile"
	errCtxMarkingNotification = "marking notification read"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Info(ctx, msgProfileRetrieved)
	return user, nil
}

// UpdateProfile сливает только переданные поля в существующий профиль.
// Никакие другие поля записи пользователя не затрагиваются.
func (u *UserUseCaseImpl) UpdateProfile(ctx context.Context, userID string, patch *api.ProfilePatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if patch.Year != nil && (*patch.Year < 1 || *patch.Year > 4) {
		log.Debug(ctx, msgErrInvalidProfileYear, zap.Int("year", *patch.Year))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingProfile, entities.ErrInvalidYear)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	merged := mergeProfile(user.Profile, patch)

	updatedUser, err := u.userRepo.UpdateProfile(ctx, userID, merged)
	if err != nil {
		log.Error(ctx, msgErrUpdatingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return updatedUser, nil
}

// MarkNotificationRead помечает одно уведомление пользователя прочитанным.
func (u *UserUseCaseImpl) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodMarkNotificationRead),
		zap.String("userID", userID),
		zap.String("notificationID", notificationID),
	)
	log.Debug(ctx, msgMarkingNotification)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if err := u.userRepo.MarkNotificationRead(ctx, userID, notificationID); err != nil {
		log.Error(ctx, msgErrMarkingNotifRead, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxMarkingNotification, err)
	}

	return nil
}

// mergeProfile применяет к профилю только поля с ненулевыми указателями.
func mergeProfile(current entities.Profile, patch *api.ProfilePatch) entities.Profile {
	merged := current

	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}
	if patch.StudentID != nil {
		merged.StudentID = *patch.StudentID
	}
	if patch.Avatar != nil {
		merged.Avatar = *patch.Avatar
	}
	if patch.Department != nil {
		merged.Department = *patch.Department
	}
	if patch.Year != nil {
		merged.Year = *patch.Year
	}
	if patch.SocialLinks != nil {
		if patch.SocialLinks.GitHub != nil {
			merged.SocialLinks.GitHub = *patch.SocialLinks.GitHub
		}
		if patch.SocialLinks.LinkedIn != nil {
			merged.SocialLinks.LinkedIn = *patch.SocialLinks.LinkedIn
		}
		if patch.SocialLinks.Twitter != nil {
			merged.SocialLinks.Twitter = *patch.SocialLinks.Twitter
		}
	}

	return merged
}
