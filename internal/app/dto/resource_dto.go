package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
)

// ResourceCreateRequest содержит данные запроса создания ресурса.
type ResourceCreateRequest struct {
	Title          string                     `json:"title"`
	Description    string                     `json:"description,omitempty"`
	Type           string                     `json:"type"`
	Category       string                     `json:"category"`
	Content        entities.ResourceContent   `json:"content"`
	TargetAudience []string                   `json:"targetAudience,omitempty"`
	Visibility     string                     `json:"visibility,omitempty"`
	AccessList     []string                   `json:"accessList,omitempty"`
	Tags           []string                   `json:"tags,omitempty"`
	Metadata       *entities.ResourceMetadata `json:"metadata,omitempty"`
	ExpiryDate     *time.Time                 `json:"expiryDate,omitempty"`
}

// Validate проверяет корректность данных создания ресурса.
func (r ResourceCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Category, validation.Required),
	)
}

// ToInput преобразует запрос во входные данные прикладного слоя.
func (r *ResourceCreateRequest) ToInput() *api.ResourceInput {
	input := &api.ResourceInput{
		Title:          r.Title,
		Description:    r.Description,
		Type:           entities.ResourceType(r.Type),
		Category:       entities.ResourceCategory(r.Category),
		Content:        r.Content,
		TargetAudience: r.TargetAudience,
		Visibility:     entities.Visibility(r.Visibility),
		AccessList:     r.AccessList,
		Tags:           r.Tags,
		ExpiryDate:     r.ExpiryDate,
	}
	if r.Metadata != nil {
		input.Metadata = *r.Metadata
	}
	return input
}

// ResourceUpdateRequest содержит данные частичного обновления ресурса.
type ResourceUpdateRequest struct {
	Title          *string                    `json:"title,omitempty"`
	Description    *string                    `json:"description,omitempty"`
	Type           *string                    `json:"type,omitempty"`
	Category       *string                    `json:"category,omitempty"`
	Content        *entities.ResourceContent  `json:"content,omitempty"`
	TargetAudience []string                   `json:"targetAudience,omitempty"`
	Visibility     *string                    `json:"visibility,omitempty"`
	AccessList     []string                   `json:"accessList,omitempty"`
	Tags           []string                   `json:"tags,omitempty"`
	Metadata       *entities.ResourceMetadata `json:"metadata,omitempty"`
	ExpiryDate     *time.Time                 `json:"expiryDate,omitempty"`
}

// Validate проверяет корректность данных обновления ресурса.
func (r ResourceUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
	)
}

// ToPatch преобразует запрос в патч прикладного слоя.
func (r *ResourceUpdateRequest) ToPatch() *api.ResourcePatch {
	patch := &api.ResourcePatch{
		Title:          r.Title,
		Description:    r.Description,
		Content:        r.Content,
		TargetAudience: r.TargetAudience,
		AccessList:     r.AccessList,
		Tags:           r.Tags,
		Metadata:       r.Metadata,
		ExpiryDate:     r.ExpiryDate,
	}
	if r.Type != nil {
		t := entities.ResourceType(*r.Type)
		patch.Type = &t
	}
	if r.Category != nil {
		c := entities.ResourceCategory(*r.Category)
		patch.Category = &c
	}
	if r.Visibility != nil {
		v := entities.Visibility(*r.Visibility)
		patch.Visibility = &v
	}
	return patch
}

// CommentRequest содержит данные комментария к ресурсу.
type CommentRequest struct {
	Text string `json:"text"`
}

// Validate проверяет корректность комментария.
func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
	)
}

// ResourceResponse содержит представление ресурса для API.
type ResourceResponse struct {
	ID             string                    `json:"id"`
	AuthorID       string                    `json:"authorId"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description,omitempty"`
	Type           string                    `json:"type"`
	Category       string                    `json:"category"`
	Content        entities.ResourceContent  `json:"content"`
	TargetAudience []string                  `json:"targetAudience,omitempty"`
	Visibility     string                    `json:"visibility"`
	AccessList     []string                  `json:"accessList,omitempty"`
	Tags           []string                  `json:"tags,omitempty"`
	Metadata       entities.ResourceMetadata `json:"metadata"`
	Stats          entities.ResourceStats    `json:"stats"`
	Comments       []entities.Comment        `json:"comments,omitempty"`
	ExpiryDate     *time.Time                `json:"expiryDate,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

// NewResourceResponse строит представление ресурса для API.
func NewResourceResponse(resource *entities.Resource) ResourceResponse {
	return ResourceResponse{
		ID:             resource.ID,
		AuthorID:       resource.AuthorID,
		Title:          resource.Title,
		Description:    resource.Description,
		Type:           string(resource.Type),
		Category:       string(resource.Category),
		Content:        resource.Content,
		TargetAudience: resource.TargetAudience,
		Visibility:     string(resource.Visibility),
		AccessList:     resource.AccessList,
		Tags:           resource.Tags,
		Metadata:       resource.Metadata,
		Stats:          resource.Stats,
		Comments:       resource.Comments,
		ExpiryDate:     resource.ExpiryDate,
		CreatedAt:      resource.CreatedAt,
		UpdatedAt:      resource.UpdatedAt,
	}
}

// NewResourceListResponse строит список представлений ресурсов.
func NewResourceListResponse(resources []*entities.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		responses = append(responses, NewResourceResponse(resource))
	}
	return responses
}
