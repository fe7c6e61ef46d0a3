// Package services содержит доменные типы и ошибки сервисов StudentHub.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthSession представляет выданный после аутентификации токен.
type AuthSession struct {
	UserID      string
	Role        string
	AccessToken string
	ExpiresAt   time.Time
}
