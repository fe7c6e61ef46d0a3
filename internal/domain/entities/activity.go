package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена активностей.
var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrInvalidActivityType   = errors.New("invalid activity type")
	ErrInvalidActivityStatus = errors.New("invalid activity status")
	ErrInvalidProgress       = errors.New("progress must be between 0 and 100")
	ErrInvalidDifficulty     = errors.New("invalid difficulty")
	ErrNotActivityOwner      = errors.New("activity belongs to another user")
)

// ActivityType определяет вид активности.
type ActivityType string

// Допустимые виды активности.
const (
	ActivityAcademic        ActivityType = "academic"
	ActivityExtracurricular ActivityType = "extracurricular"
	ActivityAchievement     ActivityType = "achievement"
	ActivityCertification   ActivityType = "certification"
	ActivityProject         ActivityType = "project"
)

// IsValid проверяет, что вид активности входит в закрытый набор значений.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityAcademic, ActivityExtracurricular, ActivityAchievement,
		ActivityCertification, ActivityProject:
		return true
	}
	return false
}

// ActivityStatus определяет состояние активности.
type ActivityStatus string

// Допустимые состояния активности.
const (
	StatusPending    ActivityStatus = "pending"
	StatusInProgress ActivityStatus = "in_progress"
	StatusCompleted  ActivityStatus = "completed"
)

// IsValid проверяет, что состояние входит в закрытый набор значений.
func (s ActivityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Difficulty определяет сложность активности.
type Difficulty string

// Допустимые уровни сложности.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid проверяет, что сложность входит в закрытый набор значений.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Attachment представляет вложение активности.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// ActivityMetrics содержит метрики активности.
type ActivityMetrics struct {
	Score      float64    `json:"score,omitempty"`
	TimeSpent  float64    `json:"timeSpent,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Feedback представляет отзыв на активность.
type Feedback struct {
	UserID    string    `json:"userId"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Activity представляет активность пользователя.
type Activity struct {
	ID          string
	UserID      string
	Type        ActivityType
	Title       string
	Description string
	Status      ActivityStatus
	Progress    int
	StartDate   *time.Time
	EndDate     *time.Time
	Attachments []Attachment
	Metrics     ActivityMetrics
	Feedback    []Feedback
	IsPublic    bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
