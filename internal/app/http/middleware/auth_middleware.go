// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/services"
	"studenthub/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// ActorKey — ключ Locals, под которым хранится аутентифицированный пользователь.
const ActorKey = "actor"

const bearerPrefix = "Bearer "

// sendUnauthorized пишет ответ 401 и возвращает ошибку только если
// сама запись не удалась.
func sendUnauthorized(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// NewAuthMiddleware создает промежуточное ПО для проверки аутентификации.
// Токен проверяется локально, запрос к хранилищу не выполняется.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return sendUnauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return sendUnauthorized(ctx, ErrorInvalidTokenFormat)
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		userID, role, err := tokenService.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(ActorKey, api.Actor{UserID: userID, Role: entities.Role(role)})

		return ctx.Next()
	}
}

// ActorFromCtx возвращает аутентифицированного пользователя запроса.
func ActorFromCtx(ctx fiber.Ctx) (api.Actor, bool) {
	actor, ok := ctx.Locals(ActorKey).(api.Actor)
	return actor, ok
}
