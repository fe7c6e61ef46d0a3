// Package students содержит HTTP обработчики сводной статистики студента.
package students

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studenthub/internal/app/http/httperr"
	"studenthub/internal/app/http/middleware"
	"studenthub/internal/ports/api"
	"studenthub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerStats = "students handler: stats"

	ErrorFailedToServeRequest = "failed to serve request"
	ErrorUnauthorized         = "unauthorized"
)

// Вспомогательная функция для обработки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Handler содержит HTTP обработчики статистики.
type Handler struct {
	statsUseCase api.StatsUseCase
}

// NewHandler создает новый экземпляр обработчика статистики.
func NewHandler(statsUseCase api.StatsUseCase) *Handler {
	return &Handler{
		statsUseCase: statsUseCase,
	}
}

// Stats обрабатывает запрос на получение показателей текущего студента.
func (h *Handler) Stats(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerStats)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	stats, err := h.statsUseCase.GetStudentStats(requestCtx, actor.UserID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(stats); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
