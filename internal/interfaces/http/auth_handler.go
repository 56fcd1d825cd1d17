package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/asistente-api/internal/application/auth"
	"github.com/jcastillo/asistente-api/internal/application/dto"
	"github.com/jcastillo/asistente-api/internal/validation"
)

// AuthHandler maneja registro, login y perfil. Los handlers son finos:
// validar en el borde, delegar al use case, devolver el error tal cual para
// que el normalizador lo proyecte.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name opcional"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  ErrorEnvelope
// @Failure      409   {object}  ErrorEnvelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	values, err := validation.Validate(dto.RegisterSchema, c.Body())
	if err != nil {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), dto.RegisterRequestFromValues(values))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  ErrorEnvelope
// @Failure      401   {object}  ErrorEnvelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	values, err := validation.Validate(dto.LoginSchema, c.Body())
	if err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), dto.LoginRequestFromValues(values))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  ErrorEnvelope
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
