package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"studenthub/pkg/logger"
)

// Сообщения восстановления после паники.
const (
	logPanicRecovered   = "panic recovered in handler"
	logPanicReplyFailed = "failed to send error response after panic"
)

// NewRecoveryMiddleware создает промежуточное ПО для восстановления после паники.
// Паника в обработчике превращается в ответ 500 вместо падения процесса.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log := logger.Log(requestCtx)
			log.Error(requestCtx, logPanicRecovered,
				zap.String("error", fmt.Sprintf("%v", rec)),
				zap.String("stack", string(debug.Stack())),
			)

			if err := ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			}); err != nil {
				log.Error(requestCtx, logPanicReplyFailed, zap.Error(err))
			}
		}()

		return ctx.Next()
	}
}
