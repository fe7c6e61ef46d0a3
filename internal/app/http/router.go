// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"studenthub/internal/app/http/activities"
	"studenthub/internal/app/http/auth"
	"studenthub/internal/app/http/middleware"
	"studenthub/internal/app/http/resources"
	"studenthub/internal/app/http/students"
	"studenthub/internal/domain/entities"
	"studenthub/internal/ports/api"
	"studenthub/internal/ports/services"
)

// UseCases объединяет прикладные сервисы, обслуживаемые маршрутизатором.
type UseCases struct {
	Auth     api.AuthUseCase
	User     api.UserUseCase
	Activity api.ActivityUseCase
	Resource api.ResourceUseCase
	Stats    api.StatsUseCase
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, useCases UseCases, tokenService services.TokenService) {
	authHandler := auth.NewHandler(useCases.Auth, useCases.User)
	activitiesHandler := activities.NewHandler(useCases.Activity)
	resourcesHandler := resources.NewHandler(useCases.Resource)
	studentsHandler := students.NewHandler(useCases.Stats)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	authRequired := middleware.NewAuthMiddleware(tokenService)

	apiGroup := app.Group("/api")

	// Auth routes: регистрация и вход публичные, остальные защищены.
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authHandler.Me, authRequired)
	authRoutes.Put("/profile", authHandler.UpdateProfile, authRequired)
	authRoutes.Put("/password", authHandler.ChangePassword, authRequired)
	authRoutes.Put("/notifications/:id/read", authHandler.MarkNotificationRead, authRequired)

	// Студенческая статистика.
	studentRoutes := apiGroup.Group("/students")
	studentRoutes.Use(authRequired)
	studentRoutes.Get("/stats", studentsHandler.Stats)

	// Активности.
	activityRoutes := apiGroup.Group("/activities")
	activityRoutes.Use(authRequired)
	activityRoutes.Get("/", activitiesHandler.List)
	activityRoutes.Post("/", activitiesHandler.Create)
	activityRoutes.Put("/:id", activitiesHandler.Update)
	activityRoutes.Post("/:id/feedback", activitiesHandler.AddFeedback)

	// Ресурсы.
	resourceRoutes := apiGroup.Group("/resources")
	resourceRoutes.Use(authRequired)
	resourceRoutes.Get("/", resourcesHandler.List)
	resourceRoutes.Post("/", resourcesHandler.Create)
	resourceRoutes.Put("/:id", resourcesHandler.Update)
	resourceRoutes.Post("/:id/views", resourcesHandler.IncrementStat(entities.StatViews))
	resourceRoutes.Post("/:id/downloads", resourcesHandler.IncrementStat(entities.StatDownloads))
	resourceRoutes.Post("/:id/likes", resourcesHandler.IncrementStat(entities.StatLikes))
	resourceRoutes.Post("/:id/comments", resourcesHandler.AddComment)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
