package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/asistente-api/internal/application/auth"
	"github.com/jcastillo/asistente-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC  *auth.UseCase
	Issuer  *jwt.Issuer
	AppName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	authGroup.Get("/me", AuthMiddleware(deps.Issuer), authHandler.Me)
}
