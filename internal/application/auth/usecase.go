// Package auth implementa los casos de uso de autenticación: registro y
// login. El orquestador es stateless entre requests; todo estado persistente
// vive detrás del puerto UserRepository.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo/asistente-api/internal/application/dto"
	"github.com/jcastillo/asistente-api/internal/domain"
	"github.com/jcastillo/asistente-api/internal/domain/entity"
	"github.com/jcastillo/asistente-api/internal/domain/repository"
	"github.com/jcastillo/asistente-api/pkg/jwt"
	"github.com/jcastillo/asistente-api/pkg/logger"
	"github.com/jcastillo/asistente-api/pkg/password"
)

// UseCase compone store, hasher y emisor de tokens.
type UseCase struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
	issuer   *jwt.Issuer
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de auth. Las dependencias se inyectan
// ya construidas; el use case nunca gestiona conexiones ni secretos.
func NewUseCase(userRepo repository.UserRepository, hasher *password.Hasher, issuer *jwt.Issuer, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, hasher: hasher, issuer: issuer, log: log}
}

// NormalizeEmail aplica la normalización canónica de la clave de login:
// trim + minúsculas. Todo acceso al store pasa por emails normalizados.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea un usuario: pre-check de unicidad, hash bcrypt, insert.
// El pre-check es una optimización; la garantía real es la restricción única
// del store, que ante una carrera devuelve ErrEmailAlreadyExists igual que
// el pre-check. Devuelve solo el perfil público, nunca el hash.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	// Un fallo del hasher es fatal: jamás degradar a texto plano.
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Carrera entre dos registros: el insert perdedor llega aquí con
		// ErrEmailAlreadyExists desde el store y se propaga tal cual.
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return dto.ToUserResponse(user), nil
}

// Login verifica credenciales y emite un token. Usuario inexistente y
// password incorrecto producen el mismo ErrInvalidCredentials hacia afuera;
// la distinción existe solo en el log del servidor (resistencia a enumeración).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Debug().Str("reason", "email_desconocido").Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		uc.log.Debug().Str("reason", "password_incorrecto").Str("user_id", user.ID).Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{
		User:        *dto.ToUserResponse(user),
		AccessToken: token,
	}, nil
}

// Profile devuelve el perfil público del usuario autenticado.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}
