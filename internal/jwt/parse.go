package jwt

import (
	"errors"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken cubre firma inválida, token malformado, expirado o sin email.
// El middleware no distingue entre causas: todas son 403.
var ErrInvalidToken = errors.New("invalid_jwt")

// Parse valida firma (HS256) y exp, y devuelve las claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	tok, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		return i.secret, nil
	},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
