package services

import (
	"context"
	"time"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, role string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (userID, role string, err error)
}
