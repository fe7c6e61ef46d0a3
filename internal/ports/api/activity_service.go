package api

import (
	"context"
	"time"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/repositories"
)

// ActivityInput содержит данные запроса создания активности.
type ActivityInput struct {
	Type        entities.ActivityType
	Title       string
	Description string
	Status      entities.ActivityStatus
	Progress    int
	StartDate   *time.Time
	EndDate     *time.Time
	Attachments []entities.Attachment
	Metrics     entities.ActivityMetrics
	IsPublic    *bool
	Tags        []string
}

// ActivityPatch описывает частичное обновление активности.
type ActivityPatch struct {
	Type        *entities.ActivityType
	Title       *string
	Description *string
	Status      *entities.ActivityStatus
	Progress    *int
	StartDate   *time.Time
	EndDate     *time.Time
	Metrics     *entities.ActivityMetrics
	IsPublic    *bool
	Tags        []string
}

// ActivityUseCase определяет основной порт для операций с активностями.
type ActivityUseCase interface {
	List(ctx context.Context, actor Actor, filter repositories.ActivityFilter) ([]*entities.Activity, error)

	Create(ctx context.Context, actor Actor, input *ActivityInput) (*entities.Activity, error)

	Update(ctx context.Context, actor Actor, activityID string, patch *ActivityPatch) (*entities.Activity, error)

	AddFeedback(ctx context.Context, actor Actor, activityID, comment string, rating int) error
}
