package api

import (
	"context"
	"time"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
)

// ResourceInput содержит данные запроса создания ресурса.
type ResourceInput struct {
	Title          string
	Description    string
	Type           entities.ResourceType
	Category       entities.ResourceCategory
	Content        entities.ResourceContent
	TargetAudience []string
	Visibility     entities.Visibility
	AccessList     []string
	Tags           []string
	Metadata       entities.ResourceMetadata
	ExpiryDate     *time.Time
}

// ResourcePatch описывает частичное обновление ресурса.
type ResourcePatch struct {
	Title          *string
	Description    *string
	Type           *entities.ResourceType
	Category       *entities.ResourceCategory
	Content        *entities.ResourceContent
	TargetAudience []string
	Visibility     *entities.Visibility
	AccessList     []string
	Tags           []string
	Metadata       *entities.ResourceMetadata
	ExpiryDate     *time.Time
}

// ResourceUseCase определяет основной порт для операций с ресурсами.
type ResourceUseCase interface {
	List(ctx context.Context, actor Actor, filter repositories.ResourceFilter) ([]*entities.Resource, error)

	Create(ctx context.Context, actor Actor, input *ResourceInput) (*entities.Resource, error)

	Update(ctx context.Context, actor Actor, resourceID string, patch *ResourcePatch) (*entities.Resource, error)

	IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error

	AddComment(ctx context.Context, actor Actor, resourceID, text string) error
}
