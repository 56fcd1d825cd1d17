// Package memory implementa UserRepository en memoria con la misma semántica
// de unicidad que el índice único de PostgreSQL. Permite probar el núcleo de
// auth (incluida la carrera de registros concurrentes) sin base de datos.
package memory

import (
	"context"
	"sync"

	"github.com/jcastillo/asistente-api/internal/domain"
	"github.com/jcastillo/asistente-api/internal/domain/entity"
	"github.com/jcastillo/asistente-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo store en memoria protegido por mutex.
type UserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

// NewUserRepository construye el store en memoria vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

// Create inserta respetando la restricción única de email: el chequeo y la
// escritura ocurren bajo el mismo lock, así dos inserts concurrentes con el
// mismo email producen exactamente un éxito y un ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

// FindByEmail devuelve una copia del registro o (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// FindByID devuelve una copia del registro o (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
