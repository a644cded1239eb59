// Package jwt emite y valida los bearer tokens de acceso (HS256).
// El único claim de identidad es "email".
package jwt

import (
	"errors"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL es la vida de un token cuando la config no indica otra.
const DefaultTTL = 24 * time.Hour

var (
	// ErrEmptySecret indica que no hay secreto de firma configurado.
	ErrEmptySecret = errors.New("jwt: empty signing secret")
	// ErrEmptyEmail indica un intento de emitir un token sin identidad.
	ErrEmptyEmail = errors.New("jwt: empty email")
)

// Claims es lo que viaja en el token.
type Claims struct {
	Email string `json:"email"`
	jwtv5.RegisteredClaims
}

// Issuer firma tokens con un secreto simétrico.
type Issuer struct {
	secret []byte
	TTL    time.Duration

	// now es inyectable para tests.
	now func() time.Time
}

// NewIssuer crea un Issuer. ttl <= 0 usa DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), TTL: ttl, now: time.Now}, nil
}

// Sign emite un token para el email dado.
func (i *Issuer) Sign(email string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", time.Time{}, ErrEmptyEmail
	}
	now := i.now().UTC()
	exp := now.Add(i.TTL)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
