// Package jwt emite y verifica tokens HS256 con vigencia fija. Los tokens son
// stateless: no hay registro ni revocación del lado del servidor; un logout es
// descarte del token en el cliente.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/jcastillo/asistente-api/internal/domain"
)

// MinSecretLen longitud mínima del secreto de firma en bytes.
const MinSecretLen = 32

// Claims incluye los claims estándar JWT más la identidad propia de la app.
// Email es copia desnormalizada de la clave de login, no autoritativa.
type Claims struct {
	gojwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Issuer firma y verifica tokens con un secreto compartido del servidor.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time // inyectable en tests de expiración
}

// NewIssuer construye el emisor. Rechaza secretos con menos de 32 bytes.
func NewIssuer(secret string, ttl time.Duration, issuer string) (*Issuer, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwt: el secreto debe tener al menos %d bytes", MinSecretLen)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// Issue genera un token firmado con issued-at ahora y expiración fija a TTL.
func (i *Issuer) Issue(userID, email string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
		Email:  email,
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify valida firma primero y expiración después. Devuelve
// domain.ErrTokenExpired para un token bien firmado pero vencido y
// domain.ErrTokenInvalid para todo lo demás; los llamadores pueden tratarlos
// distinto (re-login vs. posible manipulación).
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := gojwt.ParseWithClaims(tokenString, &Claims{}, func(t *gojwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, gojwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// TTL expone la vigencia configurada (útil para respuestas y tests).
func (i *Issuer) TTL() time.Duration { return i.ttl }

// WithClock reemplaza el reloj interno; solo para tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}
