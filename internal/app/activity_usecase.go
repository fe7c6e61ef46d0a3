package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/cache"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

const (
	methodListActivities = "ListActivities"
	methodCreateActivity = "CreateActivity"
	methodUpdateActivity = "UpdateActivity"
	methodAddFeedback    = "AddFeedback"

	msgListingActivities   = "listing activities"
	msgCreatingActivity    = "creating activity"
	msgActivityCreated     = "activity created successfully"
	msgUpdatingActivity    = "updating activity"
	msgActivityUpdated     = "activity updated successfully"
	msgAddingFeedback      = "adding activity feedback"
	msgFeedbackAdded       = "activity feedback added"
	msgNotActivityOwner    = "update attempt by non-owner"
	msgInvalidActivityData = "invalid activity data"

	msgErrListActivities  = "failed to list activities"
	msgErrCreateActivity  = "failed to create activity"
	msgErrFindActivity    = "failed to find activity"
	msgErrUpdateActivity  = "failed to update activity"
	msgErrAddFeedback     = "failed to add feedback"
	msgErrInvalidateCache = "failed to invalidate stats cache"

	errCtxListingActivities  = "listing activities"
	errCtxValidatingActivity = "validating activity"
	errCtxCreatingActivity   = "creating activity"
	errCtxFindingActivity    = "finding activity"
	errCtxCheckingOwnership  = "checking ownership"
	errCtxUpdatingActivity   = "updating activity"
	errCtxAddingFeedback     = "adding feedback"
)

// Константы для кэширования.
const (
	ActivityListCacheKeyPrefix = "activities:list:"

	activityListCacheTTL = 30 * time.Second
)

// activityListCacheKey возвращает ключ кэша списка активностей пользователя.
func activityListCacheKey(viewerID string) string {
	return ActivityListCacheKeyPrefix + viewerID
}

// ActivityUseCaseImpl реализует интерфейс ActivityUseCase.
type ActivityUseCaseImpl struct {
	activityRepo repositories.ActivityRepository
	cache        cache.Cache
}

// NewActivityUseCase создает новый экземпляр сервиса активностей.
func NewActivityUseCase(activityRepo repositories.ActivityRepository, statsCache cache.Cache) api.ActivityUseCase {
	return &ActivityUseCaseImpl{
		activityRepo: activityRepo,
		cache:        statsCache,
	}
}

// List возвращает активности, видимые пользователю.
func (a *ActivityUseCaseImpl) List(ctx context.Context, actor api.Actor, filter repositories.ActivityFilter) ([]*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListActivities), zap.String("userID", actor.UserID))
	log.Debug(ctx, msgListingActivities)

	cacheable := filter == repositories.ActivityFilter{}
	if cacheable {
		if cached := a.listFromCache(ctx, actor.UserID); cached != nil {
			return cached, nil
		}
	}

	activities, err := a.activityRepo.List(ctx, actor.UserID, filter)
	if err != nil {
		log.Error(ctx, msgErrListActivities, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingActivities, err)
	}

	if cacheable {
		a.listToCache(ctx, actor.UserID, activities)
	}

	return activities, nil
}

// Create создает активность, принадлежащую вызывающему пользователю.
func (a *ActivityUseCaseImpl) Create(ctx context.Context, actor api.Actor, input *api.ActivityInput) (*entities.Activity, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateActivity), zap.String("userID", actor.UserID))
	log.Debug(ctx, msgCreatingActivity)

	if err := validateActivityInput(input); err != nil {
		log.Debug(ctx, msgInvalidActivityData, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingActivity, err)
	}

	status := input.Status
	if status == "" {
		status = entities.StatusPending
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	activity := &entities.Activity{
		UserID:      actor.UserID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Progress:    input.Progress,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Attachments: input.Attachments,
		Metrics:     input.Metrics,
		IsPublic:    isPublic,
		Tags:        input.Tags,
	}

	created, err := a.activityRepo.Create(ctx, activity)
	if err != nil {
		log.Error(ctx, msgErrCreateActivity, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingActivity, err)
	}

	a.invalidateStats(ctx, actor.UserID)

	log.Info(ctx, msgActivityCreated, zap.String("activityID", created.ID))
	return created, nil
}

// Update применяет частичное обновление активности. Изменять активность
// может только ее владелец или администратор.
func (a *ActivityUseCaseImpl) Update(ctx context.Context, actor api.Actor, activityID string, patch *api.ActivityPatch) (*entities.Activity, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateActivity),
		zap.String("userID", actor.UserID),
		zap.String("activityID", activityID),
	)
	log.Debug(ctx, msgUpdatingActivity)

	activity, err := a.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		log.Error(ctx, msgErrFindActivity, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingActivity, err)
	}

	if activity.UserID != actor.UserID && !actor.IsAdmin() {
		log.Debug(ctx, msgNotActivityOwner)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwnership, entities.ErrNotActivityOwner)
	}

	if err := applyActivityPatch(activity, patch); err != nil {
		log.Debug(ctx, msgInvalidActivityData, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingActivity, err)
	}

	updated, err := a.activityRepo.Update(ctx, activity)
	if err != nil {
		log.Error(ctx, msgErrUpdateActivity, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingActivity, err)
	}

	a.invalidateStats(ctx, activity.UserID)

	log.Info(ctx, msgActivityUpdated)
	return updated, nil
}

// AddFeedback добавляет отзыв к активности от имени вызывающего пользователя.
func (a *ActivityUseCaseImpl) AddFeedback(ctx context.Context, actor api.Actor, activityID, comment string, rating int) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodAddFeedback),
		zap.String("userID", actor.UserID),
		zap.String("activityID", activityID),
	)
	log.Debug(ctx, msgAddingFeedback)

	activity, err := a.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		log.Error(ctx, msgErrFindActivity, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingActivity, err)
	}

	feedback := entities.Feedback{
		UserID:    actor.UserID,
		Comment:   comment,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := a.activityRepo.AddFeedback(ctx, activityID, feedback); err != nil {
		log.Error(ctx, msgErrAddFeedback, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxAddingFeedback, err)
	}

	a.invalidateStats(ctx, activity.UserID)

	log.Info(ctx, msgFeedbackAdded)
	return nil
}

// invalidateStats сбрасывает кэши пользователя после записи: сводную
// статистику и закэшированный список активностей.
func (a *ActivityUseCaseImpl) invalidateStats(ctx context.Context, userID string) {
	if a.cache == nil {
		return
	}
	for _, key := range []string{statsCacheKey(userID), activityListCacheKey(userID)} {
		if err := a.cache.Delete(ctx, key); err != nil {
			logger.Log(ctx).Warn(ctx, msgErrInvalidateCache, zap.Error(err), zap.String("key", key))
		}
	}
}

// listFromCache возвращает закэшированный список активностей или nil.
func (a *ActivityUseCaseImpl) listFromCache(ctx context.Context, viewerID string) []*entities.Activity {
	if a.cache == nil {
		return nil
	}

	raw, err := a.cache.Get(ctx, activityListCacheKey(viewerID))
	if err != nil || raw == "" {
		return nil
	}

	var activities []*entities.Activity
	if err := json.Unmarshal([]byte(raw), &activities); err != nil {
		return nil
	}

	return activities
}

func (a *ActivityUseCaseImpl) listToCache(ctx context.Context, viewerID string, activities []*entities.Activity) {
	if a.cache == nil {
		return
	}

	raw, err := json.Marshal(activities)
	if err != nil {
		return
	}

	if err := a.cache.Set(ctx, activityListCacheKey(viewerID), string(raw), activityListCacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidateCache, zap.Error(err))
	}
}

// validateActivityInput проверяет закрытые перечисления и диапазон прогресса.
func validateActivityInput(input *api.ActivityInput) error {
	if !input.Type.IsValid() {
		return entities.ErrInvalidActivityType
	}
	if input.Status != "" && !input.Status.IsValid() {
		return entities.ErrInvalidActivityStatus
	}
	if input.Progress < 0 || input.Progress > 100 {
		return entities.ErrInvalidProgress
	}
	if input.Metrics.Difficulty != "" && !input.Metrics.Difficulty.IsValid() {
		return entities.ErrInvalidDifficulty
	}
	return nil
}

// applyActivityPatch применяет только переданные поля, проверяя инварианты.
func applyActivityPatch(activity *entities.Activity, patch *api.ActivityPatch) error {
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return entities.ErrInvalidActivityType
		}
		activity.Type = *patch.Type
	}
	if patch.Title != nil {
		activity.Title = *patch.Title
	}
	if patch.Description != nil {
		activity.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return entities.ErrInvalidActivityStatus
		}
		activity.Status = *patch.Status
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return entities.ErrInvalidProgress
		}
		activity.Progress = *patch.Progress
	}
	if patch.StartDate != nil {
		activity.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		activity.EndDate = patch.EndDate
	}
	if patch.Metrics != nil {
		if patch.Metrics.Difficulty != "" && !patch.Metrics.Difficulty.IsValid() {
			return entities.ErrInvalidDifficulty
		}
		activity.Metrics = *patch.Metrics
	}
	if patch.IsPublic != nil {
		activity.IsPublic = *patch.IsPublic
	}
	if patch.Tags != nil {
		activity.Tags = patch.Tags
	}
	return nil
}
