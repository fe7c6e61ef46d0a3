// Package httperr отображает доменные ошибки на коды состояния HTTP.
package httperr

import (
	"errors"
	"net/http"

	"studenthub/internal/domain/entities"
	"studenthub/internal/domain/services"
)

// Status возвращает код состояния HTTP для доменной ошибки.
func Status(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrInvalidJWTToken),
		errors.Is(err, services.ErrExpiredJWTToken):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrNotActivityOwner),
		errors.Is(err, entities.ErrNotResourceAuthor),
		errors.Is(err, entities.ErrResourceAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrActivityNotFound),
		errors.Is(err, entities.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrInvalidRole),
		errors.Is(err, entities.ErrInvalidYear),
		errors.Is(err, entities.ErrInvalidActivityType),
		errors.Is(err, entities.ErrInvalidActivityStatus),
		errors.Is(err, entities.ErrInvalidProgress),
		errors.Is(err, entities.ErrInvalidDifficulty),
		errors.Is(err, entities.ErrInvalidResourceType),
		errors.Is(err, entities.ErrInvalidResourceCategory),
		errors.Is(err, entities.ErrInvalidVisibility),
		errors.Is(err, entities.ErrInvalidStatName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
