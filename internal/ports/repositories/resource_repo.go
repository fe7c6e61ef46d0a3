package repositories

import (
	"context"

	"studenthub/internal/domain/entities"
)

// ResourceFilter описывает необязательные условия выборки ресурсов.
type ResourceFilter struct {
	Type     entities.ResourceType
	Category entities.ResourceCategory
	Search   string
}

// ResourceRepository определяет интерфейс для операций с ресурсами.
type ResourceRepository interface {
	Create(ctx context.Context, resource *entities.Resource) (*entities.Resource, error)

	FindByID(ctx context.Context, id string) (*entities.Resource, error)

	// List возвращает ресурсы, видимые пользователю: публичные, собственные
	// и ограниченные, в access_list которых он включен.
	List(ctx context.Context, viewerID string, filter ResourceFilter) ([]*entities.Resource, error)

	Update(ctx context.Context, resource *entities.Resource) (*entities.Resource, error)

	// IncrementStat атомарно увеличивает один из счетчиков stats на единицу.
	IncrementStat(ctx context.Context, resourceID string, stat entities.StatName) error

	AddComment(ctx context.Context, resourceID string, comment entities.Comment) error

	Delete(ctx context.Context, id string) error
}
