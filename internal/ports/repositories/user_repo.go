// Package repositories определяет порты доступа к хранилищу.
package repositories

import (
	"context"

	"studenthub/internal/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователя.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateProfile записывает профиль целиком, не затрагивая остальные поля
	// записи пользователя. Слияние частичного обновления выполняет вызывающий.
	UpdateProfile(ctx context.Context, userID string, profile entities.Profile) (*entities.User, error)

	// UpdatePasswordHash - единственная операция, меняющая password_hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error

	MarkNotificationRead(ctx context.Context, userID, notificationID string) error

	Delete(ctx context.Context, id string) error
}
