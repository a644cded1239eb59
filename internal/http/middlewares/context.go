package middlewares

import (
	"context"

	"github.com/dropDatabas3/bestseller/internal/domain/types"
	jwtx "github.com/dropDatabas3/bestseller/internal/jwt"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxClaimsKey guarda las claims JWT parseadas
	ctxClaimsKey ctxKey = "claims"
	// ctxRoleKey guarda el rol resuelto por un gate
	ctxRoleKey ctxKey = "role"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// =================================================================================
// CONTEXT SETTERS
// =================================================================================

// WithClaims inyecta claims en el contexto
func WithClaims(ctx context.Context, claims *jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, claims)
}

// withRole guarda el rol que resolvió el gate (interno)
func withRole(ctx context.Context, role types.Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, role)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// =================================================================================
// CONTEXT GETTERS
// =================================================================================

// GetClaims obtiene las claims JWT del contexto.
// Retorna nil si no hay claims (middleware no aplicado).
func GetClaims(ctx context.Context) *jwtx.Claims {
	if v := ctx.Value(ctxClaimsKey); v != nil {
		if c, ok := v.(*jwtx.Claims); ok {
			return c
		}
	}
	return nil
}

// GetEmail obtiene el email del caller. "" si no hay claims.
func GetEmail(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.Email
	}
	return ""
}

// MustGetEmail obtiene el email o hace panic.
// Usar solo detrás de RequireAuth: llegar acá sin claims es un bug de wiring.
func MustGetEmail(ctx context.Context) string {
	email := GetEmail(ctx)
	if email == "" {
		panic("middlewares: no claims in context")
	}
	return email
}

// GetRole obtiene el rol resuelto por un gate ("" si ningún gate corrió).
func GetRole(ctx context.Context) types.Role {
	if v := ctx.Value(ctxRoleKey); v != nil {
		if r, ok := v.(types.Role); ok {
			return r
		}
	}
	return ""
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
