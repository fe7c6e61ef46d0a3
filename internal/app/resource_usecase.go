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
	methodListResources  = "ListResources"
	methodCreateResource = "CreateResource"
	methodUpdateResource = "UpdateResource"
	methodIncrementStat  = "IncrementStat"
	methodAddComment     = "AddComment"

	msgListingResources    = "listing resources"
	msgCreatingResource    = "creating resource"
	msgResourceCreated     = "resource created successfully"
	msgUpdatingResource    = "updating resource"
	msgResourceUpdated     = "resource updated successfully"
	msgIncrementingStat    = "incrementing resource stat"
	msgStatIncremented     = "resource stat incremented"
	msgAddingComment       = "adding resource comment"
	msgCommentAdded        = "resource comment added"
	msgNotResourceAuthor   = "update attempt by non-author"
	msgInvalidResourceData = "invalid resource data"
	msgErrInvalidateList   = "failed to invalidate resources list cache"

	msgErrListResources  = "failed to list resources"
	msgErrCreateResource = "failed to create resource"
	msgErrFindResource   = "failed to find resource"
	msgErrUpdateResource = "failed to update resource"
	msgErrIncrementStat  = "failed to increment stat"
	msgErrAddComment     = "failed to add comment"

	errCtxListingResources = "listing resources"
	errCtxValidatingRes    = "validating resource"
	errCtxCreatingResource = "creating resource"
	errCtxFindingResource  = "finding resource"
	errCtxCheckingAuthor   = "checking authorship"
	errCtxUpdatingResource = "updating resource"
	errCtxIncrementingStat = "incrementing stat"
	errCtxAddingComment    = "adding comment"
)

// Константы для кэширования.
const (
	ResourceListCacheKeyPrefix = "resources:list:"

	resourceListCacheTTL = 30 * time.Second
)

// resourceListCacheKey возвращает ключ кэша списка ресурсов пользователя.
func resourceListCacheKey(viewerID string) string {
	return ResourceListCacheKeyPrefix + viewerID
}

// ResourceUseCaseImpl реализует интерфейс ResourceUseCase.
type ResourceUseCaseImpl struct {
	resourceRepo repositories.ResourceRepository
	cache        cache.Cache
}

// NewResourceUseCase создает новый экземпляр сервиса ресурсов.
func NewResourceUseCase(resourceRepo repositories.ResourceRepository, listCache cache.Cache) api.ResourceUseCase {
	return &ResourceUseCaseImpl{
		resourceRepo: resourceRepo,
		cache:        listCache,
	}
}

// List возвращает ресурсы, доступные пользователю по правилам видимости.
func (r *ResourceUseCaseImpl) List(ctx context.Context, actor api.Actor, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListResources), zap.String("userID", actor.UserID))
	log.Debug(ctx, msgListingResources)

	cacheable := filter == repositories.ResourceFilter{}
	if cacheable {
		if cached := r.listFromCache(ctx, actor.UserID); cached != nil {
			return cached, nil
		}
	}

	resources, err := r.resourceRepo.List(ctx, actor.UserID, filter)
	if err != nil {
		log.Error(ctx, msgErrListResources, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingResources, err)
	}

	if cacheable {
		r.listToCache(ctx, actor.UserID, resources)
	}

	return resources, nil
}

// Create создает ресурс, автором которого становится вызывающий пользователь.
func (r *ResourceUseCaseImpl) Create(ctx context.Context, actor api.Actor, input *api.ResourceInput) (*entities.Resource, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateResource), zap.String("userID", actor.UserID))
	log.Debug(ctx, msgCreatingResource)

	if err := validateResourceInput(input); err != nil {
		log.Debug(ctx, msgInvalidResourceData, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRes, err)
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = entities.VisibilityPublic
	}

	resource := &entities.Resource{
		AuthorID:       actor.UserID,
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		Category:       input.Category,
		Content:        input.Content,
		TargetAudience: input.TargetAudience,
		Visibility:     visibility,
		AccessList:     input.AccessList,
		Tags:           input.Tags,
		Metadata:       input.Metadata,
		ExpiryDate:     input.ExpiryDate,
	}

	created, err := r.resourceRepo.Create(ctx, resource)
	if err != nil {
		log.Error(ctx, msgErrCreateResource, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingResource, err)
	}

	r.invalidateList(ctx, actor.UserID)

	log.Info(ctx, msgResourceCreated, zap.String("resourceID", created.ID))
	return created, nil
}

// Update применяет частичное обновление ресурса. Изменять ресурс
// может только его автор или администратор.
func (r *ResourceUseCaseImpl) Update(ctx context.Context, actor api.Actor, resourceID string, patch *api.ResourcePatch) (*entities.Resource, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateResource),
		zap.String("userID", actor.UserID),
		zap.String("resourceID", resourceID),
	)
	log.Debug(ctx, msgUpdatingResource)

	resource, err := r.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		log.Error(ctx, msgErrFindResource, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingResource, err)
	}

	if resource.AuthorID != actor.UserID && !actor.IsAdmin() {
		log.Debug(ctx, msgNotResourceAuthor)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAuthor, entities.ErrNotResourceAuthor)
	}

	if err := applyResourcePatch(resource, patch); err != nil {
		log.Debug(ctx, msgInvalidResourceData, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRes, err)
	}

	updated, err := r.resourceRepo.Update(ctx, resource)
	if err != nil {
		log.Error(ctx, msgErrUpdateResource, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingResource, err)
	}

	r.invalidateList(ctx, resource.AuthorID)

	log.Info(ctx, msgResourceUpdated)
	return updated, nil
}

// IncrementStat атомарно увеличивает один из счетчиков ресурса.
// Счетчики монотонны: операции уменьшения не существует.
func (r *ResourceUseCaseImpl) IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodIncrementStat),
		zap.String("resourceID", resourceID),
		zap.String("stat", string(stat)),
	)
	log.Debug(ctx, msgIncrementingStat)

	if !stat.IsValid() {
		return fmt.Errorf("%s: %w", errCtxIncrementingStat, entities.ErrInvalidStatName)
	}

	resource, err := r.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		log.Error(ctx, msgErrFindResource, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingResource, err)
	}

	if err := r.resourceRepo.IncrementStat(ctx, resourceID, stat); err != nil {
		log.Error(ctx, msgErrIncrementStat, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxIncrementingStat, err)
	}

	r.invalidateList(ctx, resource.AuthorID)

	log.Debug(ctx, msgStatIncremented)
	return nil
}

// AddComment добавляет комментарий к ресурсу от имени пользователя.
func (r *ResourceUseCaseImpl) AddComment(ctx context.Context, actor api.Actor, resourceID, text string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodAddComment),
		zap.String("userID", actor.UserID),
		zap.String("resourceID", resourceID),
	)
	log.Debug(ctx, msgAddingComment)

	resource, err := r.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		log.Error(ctx, msgErrFindResource, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingResource, err)
	}

	comment := entities.Comment{
		UserID:    actor.UserID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.resourceRepo.AddComment(ctx, resourceID, comment); err != nil {
		log.Error(ctx, msgErrAddComment, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxAddingComment, err)
	}

	r.invalidateList(ctx, resource.AuthorID)

	log.Info(ctx, msgCommentAdded)
	return nil
}

// invalidateList сбрасывает закэшированный список ресурсов пользователя.
func (r *ResourceUseCaseImpl) invalidateList(ctx context.Context, viewerID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, resourceListCacheKey(viewerID)); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidateList, zap.Error(err))
	}
}

// listFromCache возвращает закэшированный список ресурсов или nil.
func (r *ResourceUseCaseImpl) listFromCache(ctx context.Context, viewerID string) []*entities.Resource {
	if r.cache == nil {
		return nil
	}

	raw, err := r.cache.Get(ctx, resourceListCacheKey(viewerID))
	if err != nil || raw == "" {
		return nil
	}

	var resources []*entities.Resource
	if err := json.Unmarshal([]byte(raw), &resources); err != nil {
		return nil
	}

	return resources
}

func (r *ResourceUseCaseImpl) listToCache(ctx context.Context, viewerID string, resources []*entities.Resource) {
	if r.cache == nil {
		return
	}

	raw, err := json.Marshal(resources)
	if err != nil {
		return
	}

	if err := r.cache.Set(ctx, resourceListCacheKey(viewerID), string(raw), resourceListCacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidateList, zap.Error(err))
	}
}

// validateResourceInput проверяет закрытые перечисления ресурса.
func validateResourceInput(input *api.ResourceInput) error {
	if !input.Type.IsValid() {
		return entities.ErrInvalidResourceType
	}
	if !input.Category.IsValid() {
		return entities.ErrInvalidResourceCategory
	}
	if input.Visibility != "" && !input.Visibility.IsValid() {
		return entities.ErrInvalidVisibility
	}
	return nil
}

// applyResourcePatch применяет только переданные поля, проверяя инварианты.
func applyResourcePatch(resource *entities.Resource, patch *api.ResourcePatch) error {
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return entities.ErrInvalidResourceType
		}
		resource.Type = *patch.Type
	}
	if patch.Title != nil {
		resource.Title = *patch.Title
	}
	if patch.Description != nil {
		resource.Description = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return entities.ErrInvalidResourceCategory
		}
		resource.Category = *patch.Category
	}
	if patch.Content != nil {
		resource.Content = *patch.Content
	}
	if patch.TargetAudience != nil {
		resource.TargetAudience = patch.TargetAudience
	}
	if patch.Visibility != nil {
		if !patch.Visibility.IsValid() {
			return entities.ErrInvalidVisibility
		}
		resource.Visibility = *patch.Visibility
	}
	if patch.AccessList != nil {
		resource.AccessList = patch.AccessList
	}
	if patch.Tags != nil {
		resource.Tags = patch.Tags
	}
	if patch.Metadata != nil {
		resource.Metadata = *patch.Metadata
	}
	if patch.ExpiryDate != nil {
		resource.ExpiryDate = patch.ExpiryDate
	}
	return nil
}
