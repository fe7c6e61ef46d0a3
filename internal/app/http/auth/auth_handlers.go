// Package auth содержит HTTP обработчики аутентификации и профиля.
package auth

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
	"studenthub/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerMe            = "auth handler: me"
	LogHandlerUpdateProfile = "auth handler: update profile"
	LogHandlerChangeSecret  = "auth handler: change password"
	LogHandlerReadNotice    = "auth handler: mark notification read"

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

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	input := &api.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     entities.Role(req.Role),
		Profile:  req.Profile.ToProfile(),
	}

	result, err := h.authUseCase.Register(requestCtx, input)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(sessionResponse(result)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(sessionResponse(result)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Me обрабатывает запрос на получение профиля текущего пользователя.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerMe)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, actor.UserID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile обрабатывает запрос на частичное обновление профиля.
// Поля, отсутствующие в запросе, остаются без изменений.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ProfileUpdateRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := h.userUseCase.UpdateProfile(requestCtx, actor.UserID, req.Profile.ToPatch())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ChangePassword обрабатывает запрос на смену пароля. Новый хэш
// вычисляется только здесь, обновление профиля пароль не затрагивает.
func (h *Handler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangeSecret)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	var req dto.ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	if err := h.authUseCase.ChangePassword(requestCtx, actor.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "password changed successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// MarkNotificationRead обрабатывает запрос на отметку уведомления прочитанным.
func (h *Handler) MarkNotificationRead(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerReadNotice)

	actor, ok := middleware.ActorFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, ErrorUnauthorized)
	}

	notificationID := ctx.Params("id")

	if err := h.userUseCase.MarkNotificationRead(requestCtx, actor.UserID, notificationID); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, httperr.Status(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "notification marked as read",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// sessionResponse строит ответ с токеном и снимком пользователя.
func sessionResponse(result *api.AuthResult) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     result.Session.AccessToken,
		ExpiresAt: result.Session.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	}
}
