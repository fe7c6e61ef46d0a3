package api

import (
	"context"

	"studenthub/internal/domain/entities"
)

// SocialLinksPatch описывает частичное обновление социальных ссылок.
type SocialLinksPatch struct {
	GitHub   *string
	LinkedIn *string
	Twitter  *string
}

// ProfilePatch описывает частичное обновление профиля: применяются
// только поля с ненулевыми указателями.
type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	StudentID   *string
	Avatar      *string
	Department  *string
	Year        *int
	SocialLinks *SocialLinksPatch
}

// StudentStats представляет сводные показатели для панели студента.
type StudentStats struct {
	GPA                 float64 `json:"gpa"`
	Attendance          float64 `json:"attendance"`
	CompletedActivities int     `json:"completedActivities"`
	UpcomingDeadlines   int     `json:"upcomingDeadlines"`
}

// UserUseCase определяет основной порт для пользовательских операций.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	UpdateProfile(ctx context.Context, userID string, patch *ProfilePatch) (*entities.User, error)

	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}

// StatsUseCase определяет порт для сводной статистики студента.
type StatsUseCase interface {
	GetStudentStats(ctx context.Context, userID string) (*StudentStats, error)
}
