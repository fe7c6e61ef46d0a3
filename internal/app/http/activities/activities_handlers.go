// Package activities содержит HTTP обработчики студенческих активностей.
package activities

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studenthub/internal/app/dto"
	"studenthub/internal/app/http/httperr"
	"studenthub/internal/app/http/middleware"
	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerList        = "activities handler: list"
	LogHandlerCreate      = "activities handler: create"
	LogHandlerUpdate      = "activities handler: update"
	LogHandlerAddFeedback = "activities handler: add feedback"

	ErrorInvalidRequest       = "invalid request"
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

// Handler содержит HTTP обработчики активностей.
type Handler struct {
	activityUseCase api.ActivityUseCase
}

// NewHandler создает новый экземпляр обработчика активностей.
func NewHandler(activityUseCase api.ActivityUseCase) *Handler {
	return &Handler{
		activityUseCase: activityUseCase,
	}
}

// List обрабатывает запрос на получение списка активностей.
// Фильтры передаются параметрами запроса: type, status, search.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	filter := repositories.ActivityFilter{
		Type:   entities.ActivityType(ctx.Query("type")),
		Status: entities.ActivityStatus(ctx.Query("status")),
		Search: ctx.Query("search"),
	}

	list, err := h.activityUseCase.List(requestCtx, actor, filter)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewActivityListResponse(list)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create обрабатывает запрос на создание активности.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ActivityCreateRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	activity, err := h.activityUseCase.Create(requestCtx, actor, req.ToInput())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewActivityResponse(activity)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Update обрабатывает запрос на частичное обновление активности.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ActivityUpdateRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	activity, err := h.activityUseCase.Update(requestCtx, actor, ctx.Params("id"), req.ToPatch())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewActivityResponse(activity)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// AddFeedback обрабатывает запрос на добавление отзыва к активности.
func (h *Handler) AddFeedback(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAddFeedback)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.FeedbackRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if err := h.activityUseCase.AddFeedback(requestCtx, actor, ctx.Params("id"), req.Comment, req.Rating); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "feedback added",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
