package dto

import (
	"time"

	"github.com/jcastillo/asistente-api/internal/domain/entity"
	"github.com/jcastillo/asistente-api/internal/validation"
)

// Esquemas de entrada para auth. Se aplican una sola vez, en el borde HTTP;
// los use cases asumen entrada ya validada y normalizada.
var (
	RegisterSchema = validation.Schema{Fields: []validation.Field{
		{Name: "email", Kind: validation.KindEmail, Required: true, MaxLen: 254},
		{Name: "password", Kind: validation.KindString, Required: true, MinLen: 6, MaxBytes: 72},
		{Name: "name", Kind: validation.KindString, Required: false, MaxLen: 200},
	}}

	LoginSchema = validation.Schema{Fields: []validation.Field{
		{Name: "email", Kind: validation.KindEmail, Required: true},
		{Name: "password", Kind: validation.KindString, Required: true},
	}}
)

// RegisterRequest entrada validada para registro (password en texto plano,
// se hashea en el use case y no sale de ahí).
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// RegisterRequestFromValues construye el DTO desde los valores validados.
func RegisterRequestFromValues(v validation.Values) RegisterRequest {
	return RegisterRequest{
		Email:    v.Get("email"),
		Password: v.Get("password"),
		Name:     v.Get("name"),
	}
}

// LoginRequest entrada validada para login.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginRequestFromValues construye el DTO desde los valores validados.
func LoginRequestFromValues(v validation.Values) LoginRequest {
	return LoginRequest{
		Email:    v.Get("email"),
		Password: v.Get("password"),
	}
}

// UserResponse perfil público de un usuario. No existe campo de password:
// el digest no se serializa hacia afuera bajo ninguna circunstancia.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse salida de login: perfil público + token firmado.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// ToUserResponse proyecta la entidad al perfil público.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
