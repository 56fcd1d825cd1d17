package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/asistente-api/internal/domain"
	"github.com/jcastillo/asistente-api/pkg/logger"
)

// ErrorEnvelope es el único formato de error que sale hacia el cliente.
// Ningún otro componente formatea mensajes visibles.
type ErrorEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     interface{} `json:"errors,omitempty"`
	Timestamp  string      `json:"timestamp"`
	Path       string      `json:"path"`
}

// NewErrorHandler devuelve el normalizador de errores: la frontera única que
// intercepta todo error escapado de cualquier handler y lo proyecta sobre el
// conjunto cerrado de variantes del dominio. Errores no clasificados salen
// como 500 genérico; su detalle interno (stack, mensajes de driver) se loggea
// aquí y jamás viaja en el cuerpo de la respuesta.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"
		var details interface{}

		var validationErr *domain.ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
			message = "Validation failed"
			details = validationErr.Violations
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			status = fiber.StatusConflict
			message = "Email already exists"
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = fiber.StatusUnauthorized
			message = "Invalid credentials"
		case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
			// Expirado y manipulado se distinguen solo en el log.
			status = fiber.StatusUnauthorized
			message = "Invalid or expired token"
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
			status = fiber.StatusNotFound
			message = "Resource not found"
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			if status < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}

		evt := log.Warn()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Err(err).
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request fallida")

		return c.Status(status).JSON(ErrorEnvelope{
			StatusCode: status,
			Message:    message,
			Errors:     details,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       c.Path(),
		})
	}
}
