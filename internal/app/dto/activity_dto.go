package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
)

// ActivityCreateRequest содержит данные запроса создания активности.
type ActivityCreateRequest struct {
	Type        string                    `json:"type"`
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	Status      string                    `json:"status,omitempty"`
	Progress    int                       `json:"progress,omitempty"`
	StartDate   *time.Time                `json:"startDate,omitempty"`
	EndDate     *time.Time                `json:"endDate,omitempty"`
	Attachments []entities.Attachment     `json:"attachments,omitempty"`
	Metrics     *entities.ActivityMetrics `json:"metrics,omitempty"`
	IsPublic    *bool                     `json:"isPublic,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
}

// Validate проверяет корректность данных создания активности.
func (r ActivityCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Progress, validation.Min(0), validation.Max(100)),
	)
}

// ToInput преобразует запрос во входные данные прикладного слоя.
func (r *ActivityCreateRequest) ToInput() *api.ActivityInput {
	input := &api.ActivityInput{
		Type:        entities.ActivityType(r.Type),
		Title:       r.Title,
		Description: r.Description,
		Status:      entities.ActivityStatus(r.Status),
		Progress:    r.Progress,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Attachments: r.Attachments,
		IsPublic:    r.IsPublic,
		Tags:        r.Tags,
	}
	if r.Metrics != nil {
		input.Metrics = *r.Metrics
	}
	return input
}

// ActivityUpdateRequest содержит данные частичного обновления активности.
type ActivityUpdateRequest struct {
	Type        *string                   `json:"type,omitempty"`
	Title       *string                   `json:"title,omitempty"`
	Description *string                   `json:"description,omitempty"`
	Status      *string                   `json:"status,omitempty"`
	Progress    *int                      `json:"progress,omitempty"`
	StartDate   *time.Time                `json:"startDate,omitempty"`
	EndDate     *time.Time                `json:"endDate,omitempty"`
	Metrics     *entities.ActivityMetrics `json:"metrics,omitempty"`
	IsPublic    *bool                     `json:"isPublic,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
}

// Validate проверяет корректность данных обновления активности.
func (r ActivityUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.Progress, validation.Min(0), validation.Max(100)),
	)
}

// ToPatch преобразует запрос в патч прикладного слоя.
func (r *ActivityUpdateRequest) ToPatch() *api.ActivityPatch {
	patch := &api.ActivityPatch{
		Title:       r.Title,
		Description: r.Description,
		Progress:    r.Progress,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Metrics:     r.Metrics,
		IsPublic:    r.IsPublic,
		Tags:        r.Tags,
	}
	if r.Type != nil {
		t := entities.ActivityType(*r.Type)
		patch.Type = &t
	}
	if r.Status != nil {
		s := entities.ActivityStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// FeedbackRequest содержит данные отзыва на активность.
type FeedbackRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating,omitempty"`
}

// Validate проверяет корректность отзыва.
func (r FeedbackRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.Rating, validation.Min(0), validation.Max(5)),
	)
}

// ActivityResponse содержит представление активности для API.
type ActivityResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"userId"`
	Type        string                   `json:"type"`
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	Status      string                   `json:"status"`
	Progress    int                      `json:"progress"`
	StartDate   *time.Time               `json:"startDate,omitempty"`
	EndDate     *time.Time               `json:"endDate,omitempty"`
	Attachments []entities.Attachment    `json:"attachments,omitempty"`
	Metrics     entities.ActivityMetrics `json:"metrics"`
	Feedback    []entities.Feedback      `json:"feedback,omitempty"`
	IsPublic    bool                     `json:"isPublic"`
	Tags        []string                 `json:"tags,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// NewActivityResponse строит представление активности для API.
func NewActivityResponse(activity *entities.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		UserID:      activity.UserID,
		Type:        string(activity.Type),
		Title:       activity.Title,
		Description: activity.Description,
		Status:      string(activity.Status),
		Progress:    activity.Progress,
		StartDate:   activity.StartDate,
		EndDate:     activity.EndDate,
		Attachments: activity.Attachments,
		Metrics:     activity.Metrics,
		Feedback:    activity.Feedback,
		IsPublic:    activity.IsPublic,
		Tags:        activity.Tags,
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}
}

// NewActivityListResponse строит список представлений активностей.
func NewActivityListResponse(activities []*entities.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}
	return responses
}
