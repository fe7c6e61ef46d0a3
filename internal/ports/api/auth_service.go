// Package api определяет порты прикладных операций (use cases).
package api

import (
	"context"

	"studenthub/internal/domain/entities"
	"studenthub/internal/domain/services"
)

// Actor представляет аутентифицированную сторону запроса.
type Actor struct {
	UserID string
	Role   entities.Role
}

// IsAdmin сообщает, имеет ли сторона административные права.
func (a Actor) IsAdmin() bool {
	return a.Role == entities.RoleAdmin
}

// RegisterInput содержит данные запроса регистрации.
type RegisterInput struct {
	Email    string
	Password string
	Role     entities.Role
	Profile  entities.Profile
}

// AuthResult содержит выданный токен и снимок пользователя.
type AuthResult struct {
	Session *services.AuthSession
	User    *entities.User
}

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)

	Login(ctx context.Context, email, password string) (*AuthResult, error)

	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
