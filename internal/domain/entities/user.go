// Package entities содержит основные сущности домена StudentHub.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must contain at least 6 characters")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrInvalidYear      = errors.New("year must be between 1 and 4")
)

// Role определяет роль пользователя в системе.
type Role string

// Допустимые роли пользователя.
const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
	RoleJunior  Role = "junior"
)

// IsValid проверяет, что роль входит в закрытый набор значений.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin, RoleJunior:
		return true
	}
	return false
}

// SocialLinks содержит ссылки на профили пользователя во внешних сервисах.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Profile представляет изменяемую часть записи пользователя.
type Profile struct {
	FirstName   string      `json:"firstName,omitempty"`
	LastName    string      `json:"lastName,omitempty"`
	StudentID   string      `json:"studentId,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	Department  string      `json:"department,omitempty"`
	Year        int         `json:"year,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// AcademicInfo содержит академические показатели пользователя.
type AcademicInfo struct {
	GPA              float64  `json:"gpa"`
	Attendance       float64  `json:"attendance"`
	CompletedCourses []string `json:"completedCourses"`
	CurrentCourses   []string `json:"currentCourses"`
}

// Achievement представляет достижение пользователя.
type Achievement struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category,omitempty"`
	Badge       string    `json:"badge,omitempty"`
	IsPublic    bool      `json:"isPublic"`
}

// Notification представляет уведомление пользователя.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// User представляет основную сущность домена пользователя.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	Role          Role
	Profile       Profile
	AcademicInfo  AcademicInfo
	Achievements  []Achievement
	Notifications []Notification
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeEmail приводит email к каноническому виду: обрезка пробелов и нижний регистр.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
