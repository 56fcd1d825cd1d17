package repository

import (
	"context"

	"github.com/jcastillo/asistente-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Contrato de duplicados: Create debe devolver domain.ErrEmailAlreadyExists
// cuando el insert viola la restricción única de email. El pre-check del
// orquestador es solo una optimización; esta señal es la garantía autoritativa
// frente a registros concurrentes.
//
// FindByEmail y FindByID devuelven (nil, nil) cuando no hay registro: la
// ausencia no es un error del store.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
