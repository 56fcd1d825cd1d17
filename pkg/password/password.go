// Package password envuelve bcrypt detrás de un Hasher con costo configurable.
// El digest resultante es autocontenido (salt + costo + hash), así Verify no
// necesita ningún canal lateral.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcastillo/asistente-api/internal/domain"
)

// DefaultCost factor de trabajo por defecto (equivalente a bcrypt 10).
const DefaultCost = bcrypt.DefaultCost

// Hasher aplica hashing one-way con salt aleatorio por llamada.
type Hasher struct {
	cost int
}

// NewHasher construye un Hasher. Un costo fuera del rango válido de bcrypt
// se ajusta al por defecto en lugar de fallar en cada Hash.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash genera un digest bcrypt con salt fresco. Un fallo del primitivo
// (entropía, password demasiado largo) es fatal: domain.ErrHashing, nunca
// un fallback a un esquema más débil.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password vacío", domain.ErrHashing)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
	return string(digest), nil
}

// Verify compara candidato contra digest. Falla cerrado: digest malformado o
// cualquier error interno devuelve false, nunca propaga. La comparación en
// tiempo constante la hace bcrypt internamente.
func (h *Hasher) Verify(plaintext, digest string) bool {
	// Mismatch y digest corrupto son indistinguibles hacia afuera: ambos false.
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
