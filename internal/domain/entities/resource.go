package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена ресурсов.
var (
	ErrResourceNotFound        = errors.New("resource not found")
	ErrInvalidResourceType     = errors.New("invalid resource type")
	ErrInvalidResourceCategory = errors.New("invalid resource category")
	ErrInvalidVisibility       = errors.New("invalid resource visibility")
	ErrInvalidStatName         = errors.New("invalid resource stat name")
	ErrNotResourceAuthor       = errors.New("resource belongs to another author")
	ErrResourceAccessDenied    = errors.New("resource access denied")
)

// ResourceType определяет вид ресурса.
type ResourceType string

// Допустимые виды ресурса.
const (
	ResourceDocument     ResourceType = "document"
	ResourceVideo        ResourceType = "video"
	ResourceLink         ResourceType = "link"
	ResourceAssignment   ResourceType = "assignment"
	ResourceProject      ResourceType = "project"
	ResourceAnnouncement ResourceType = "announcement"
)

// IsValid проверяет, что вид ресурса входит в закрытый набор значений.
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceDocument, ResourceVideo, ResourceLink,
		ResourceAssignment, ResourceProject, ResourceAnnouncement:
		return true
	}
	return false
}

// ResourceCategory определяет категорию ресурса.
type ResourceCategory string

// Допустимые категории ресурса.
const (
	CategoryStudyMaterial ResourceCategory = "study_material"
	CategoryEvent         ResourceCategory = "event"
	CategoryWorkshop      ResourceCategory = "workshop"
	CategoryCompetition   ResourceCategory = "competition"
	CategoryOther         ResourceCategory = "other"
)

// IsValid проверяет, что категория входит в закрытый набор значений.
func (c ResourceCategory) IsValid() bool {
	switch c {
	case CategoryStudyMaterial, CategoryEvent, CategoryWorkshop,
		CategoryCompetition, CategoryOther:
		return true
	}
	return false
}

// Visibility определяет область видимости ресурса.
type Visibility string

// Допустимые области видимости.
const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityRestricted Visibility = "restricted"
)

// IsValid проверяет, что область видимости входит в закрытый набор значений.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityRestricted:
		return true
	}
	return false
}

// StatName определяет имя монотонного счетчика ресурса.
type StatName string

// Допустимые счетчики ресурса.
const (
	StatViews     StatName = "views"
	StatDownloads StatName = "downloads"
	StatLikes     StatName = "likes"
)

// IsValid проверяет, что имя счетчика входит в закрытый набор значений.
func (s StatName) IsValid() bool {
	switch s {
	case StatViews, StatDownloads, StatLikes:
		return true
	}
	return false
}

// ResourceContent содержит полезную нагрузку ресурса.
type ResourceContent struct {
	URL      string `json:"url,omitempty"`
	Text     string `json:"text,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

// ResourceMetadata содержит технические атрибуты ресурса.
type ResourceMetadata struct {
	Size     int64   `json:"size,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Format   string  `json:"format,omitempty"`
}

// ResourceStats содержит монотонно растущие счетчики ресурса.
type ResourceStats struct {
	Views     int64 `json:"views"`
	Downloads int64 `json:"downloads"`
	Likes     int64 `json:"likes"`
}

// Comment представляет комментарий к ресурсу.
type Comment struct {
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Resource представляет учебный ресурс.
type Resource struct {
	ID             string
	AuthorID       string
	Title          string
	Description    string
	Type           ResourceType
	Category       ResourceCategory
	Content        ResourceContent
	TargetAudience []string
	Visibility     Visibility
	AccessList     []string
	Tags           []string
	Metadata       ResourceMetadata
	Stats          ResourceStats
	Comments       []Comment
	ExpiryDate     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
