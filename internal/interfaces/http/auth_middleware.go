package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/asistente-api/internal/domain"
	"github.com/jcastillo/asistente-api/pkg/jwt"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthMiddleware valida el Bearer Token y deja la identidad en c.Locals.
// Los fallos se devuelven como errores de dominio para que el normalizador
// produzca el envelope uniforme.
func AuthMiddleware(issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return domain.ErrTokenInvalid
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.ErrTokenInvalid
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return domain.ErrTokenInvalid
		}
		claims, err := issuer.Verify(tokenString)
		if err != nil {
			return err
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
