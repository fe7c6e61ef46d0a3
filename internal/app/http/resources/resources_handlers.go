// Package resources содержит HTTP обработчики учебных ресурсов.
package resources

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
	LogHandlerList          = "resources handler: list"
	LogHandlerCreate        = "resources handler: create"
	LogHandlerUpdate        = "resources handler: update"
	LogHandlerIncrementStat = "resources handler: increment stat"
	LogHandlerAddComment    = "resources handler: add comment"

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

// Handler содержит HTTP обработчики ресурсов.
type Handler struct {
	resourceUseCase api.ResourceUseCase
}

// NewHandler создает новый экземпляр обработчика ресурсов.
func NewHandler(resourceUseCase api.ResourceUseCase) *Handler {
	return &Handler{
		resourceUseCase: resourceUseCase,
	}
}

// List обрабатывает запрос на получение списка ресурсов.
// Фильтры передаются параметрами запроса: type, category, search.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	filter := repositories.ResourceFilter{
		Type:     entities.ResourceType(ctx.Query("type")),
		Category: entities.ResourceCategory(ctx.Query("category")),
		Search:   ctx.Query("search"),
	}

	list, err := h.resourceUseCase.List(requestCtx, actor, filter)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewResourceListResponse(list)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create обрабатывает запрос на создание ресурса.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ResourceCreateRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	resource, err := h.resourceUseCase.Create(requestCtx, actor, req.ToInput())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewResourceResponse(resource)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Update обрабатывает запрос на частичное обновление ресурса.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ResourceUpdateRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	resource, err := h.resourceUseCase.Update(requestCtx, actor, ctx.Params("id"), req.ToPatch())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewResourceResponse(resource)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// IncrementStat возвращает обработчик увеличения заданного счетчика
// ресурса. Счетчики монотонны, операции уменьшения нет.
func (h *Handler) IncrementStat(stat entities.StatName) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx)
		log.Info(requestCtx, LogHandlerIncrementStat)

		if err := h.resourceUseCase.IncrementStat(requestCtx, ctx.Params("id"), stat); err != nil {
			log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
			return sendErrorResponse(ctx, httperr.Status(err), err.Error())
		}

		if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
			"message": "stat incremented",
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}
}

// AddComment обрабатывает запрос на добавление комментария к ресурсу.
func (h *Handler) AddComment(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAddComment)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.CommentRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if err := h.resourceUseCase.AddComment(requestCtx, actor, ctx.Params("id"), req.Text); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "comment added",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
