package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastillo/asistente-api/internal/domain"
	"github.com/jcastillo/asistente-api/internal/domain/entity"
	"github.com/jcastillo/asistente-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Política de fallos transitorios: fail fast, sin reintentos; cada operación
// lleva un timeout propio derivado del contexto del request.
type UserRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration) *UserRepo {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UserRepo{pool: pool, timeout: timeout}
}

// Create persiste un nuevo usuario. Un 23505 sobre el índice único de email
// se mapea a domain.ErrEmailAlreadyExists, igual que el pre-check del
// orquestador; el insert es atómico, no quedan registros parciales.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail obtiene un usuario por email normalizado; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "get user by email")
}

// FindByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get user by id")
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// opContext acota cada operación del store: granularidad "operación entera",
// no se cancela un insert a mitad de camino.
func (r *UserRepo) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}
