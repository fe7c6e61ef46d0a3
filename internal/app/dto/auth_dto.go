// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"studenthub/internal/domain/entities"
	"studenthub/internal/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     string          `json:"role,omitempty"`
	Profile  *ProfilePayload `json:"profile,omitempty"`
}

// Validate проверяет корректность данных регистрации.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(services.MinPasswordLength, 72)),
		validation.Field(&r.Role, validation.In(
			string(entities.RoleStudent),
			string(entities.RoleFaculty),
			string(entities.RoleAdmin),
			string(entities.RoleJunior),
		)),
	)
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate проверяет корректность данных входа.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordRequest содержит данные для смены пароля.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate проверяет корректность данных смены пароля.
func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(services.MinPasswordLength, 72)),
	)
}

// SessionResponse содержит токен доступа и данные пользователя.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
