package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
)

// SocialLinksPayload содержит ссылки на внешние профили.
type SocialLinksPayload struct {
	GitHub   *string `json:"github,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
}

// ProfilePayload содержит поля профиля; nil означает отсутствие поля
// в запросе, и такое поле не изменяется.
type ProfilePayload struct {
	FirstName   *string             `json:"firstName,omitempty"`
	LastName    *string             `json:"lastName,omitempty"`
	StudentID   *string             `json:"studentId,omitempty"`
	Avatar      *string             `json:"avatar,omitempty"`
	Department  *string             `json:"department,omitempty"`
	Year        *int                `json:"year,omitempty"`
	SocialLinks *SocialLinksPayload `json:"socialLinks,omitempty"`
}

// Validate проверяет допустимость значений профиля.
func (p ProfilePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Year, validation.Min(1), validation.Max(4)),
	)
}

// ProfileUpdateRequest содержит данные запроса обновления профиля.
type ProfileUpdateRequest struct {
	Profile ProfilePayload `json:"profile"`
}

// Validate проверяет корректность запроса обновления профиля.
func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Profile),
	)
}

// ToPatch преобразует полезную нагрузку профиля в патч прикладного слоя.
func (p *ProfilePayload) ToPatch() *api.ProfilePatch {
	patch := &api.ProfilePatch{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		StudentID:  p.StudentID,
		Avatar:     p.Avatar,
		Department: p.Department,
		Year:       p.Year,
	}
	if p.SocialLinks != nil {
		patch.SocialLinks = &api.SocialLinksPatch{
			GitHub:   p.SocialLinks.GitHub,
			LinkedIn: p.SocialLinks.LinkedIn,
			Twitter:  p.SocialLinks.Twitter,
		}
	}
	return patch
}

// ToProfile собирает профиль из переданных полей, пропуская отсутствующие.
func (p *ProfilePayload) ToProfile() entities.Profile {
	var profile entities.Profile
	if p == nil {
		return profile
	}
	if p.FirstName != nil {
		profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.LastName = *p.LastName
	}
	if p.StudentID != nil {
		profile.StudentID = *p.StudentID
	}
	if p.Avatar != nil {
		profile.Avatar = *p.Avatar
	}
	if p.Department != nil {
		profile.Department = *p.Department
	}
	if p.Year != nil {
		profile.Year = *p.Year
	}
	if p.SocialLinks != nil {
		if p.SocialLinks.GitHub != nil {
			profile.SocialLinks.GitHub = *p.SocialLinks.GitHub
		}
		if p.SocialLinks.LinkedIn != nil {
			profile.SocialLinks.LinkedIn = *p.SocialLinks.LinkedIn
		}
		if p.SocialLinks.Twitter != nil {
			profile.SocialLinks.Twitter = *p.SocialLinks.Twitter
		}
	}
	return profile
}

// UserResponse содержит публичное представление пользователя.
// Хэш пароля в ответах API не передается.
type UserResponse struct {
	ID            string                  `json:"id"`
	Email         string                  `json:"email"`
	Role          string                  `json:"role"`
	Profile       entities.Profile        `json:"profile"`
	AcademicInfo  entities.AcademicInfo   `json:"academicInfo"`
	Achievements  []entities.Achievement  `json:"achievements,omitempty"`
	Notifications []entities.Notification `json:"notifications,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// StudentStatsResponse содержит сводные показатели студента.
type StudentStatsResponse struct {
	GPA                 float64 `json:"gpa"`
	Attendance          float64 `json:"attendance"`
	CompletedActivities int     `json:"completedActivities"`
	UpcomingDeadlines   int     `json:"upcomingDeadlines"`
}

// NewUserResponse строит представление пользователя для API.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Role:          string(user.Role),
		Profile:       user.Profile,
		AcademicInfo:  user.AcademicInfo,
		Achievements:  user.Achievements,
		Notifications: user.Notifications,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
