package repositories

import (
	"context"
	"time"

	"studenthub/internal/domain/entities"
)

// ActivityFilter описывает необязательные условия выборки активностей.
type ActivityFilter struct {
	Type   entities.ActivityType
	Status entities.ActivityStatus
	Search string
}

// ActivityRepository определяет интерфейс для операций с активностями.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.Activity) (*entities.Activity, error)

	FindByID(ctx context.Context, id string) (*entities.Activity, error)

	// List возвращает активности, видимые пользователю: его собственные и публичные.
	List(ctx context.Context, viewerID string, filter ActivityFilter) ([]*entities.Activity, error)

	Update(ctx context.Context, activity *entities.Activity) (*entities.Activity, error)

	AddFeedback(ctx context.Context, activityID string, feedback entities.Feedback) error

	CountCompleted(ctx context.Context, userID string) (int, error)

	CountUpcomingDeadlines(ctx context.Context, userID string, until time.Time) (int, error)

	Delete(ctx context.Context, id string) error
}
