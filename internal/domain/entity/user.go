package entity

import "time"

// Roles válidos para User. El registro siempre asigna RoleUser; RoleAdmin
// solo se asigna por caminos administrativos fuera de este núcleo.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User representa una identidad del sistema. Email es la clave de login,
// única y normalizada (trim + minúsculas) antes de cualquier acceso al store.
type User struct {
	ID           string
	Email        string
	PasswordHash string // digest bcrypt (salt + costo incluidos), nunca serializado hacia afuera
	Name         string
	Role         string // USER | ADMIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
