package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/bestseller/internal/http/errors"
	jwtx "github.com/dropDatabas3/bestseller/internal/jwt"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// TokenParser valida un bearer token crudo. *jwt.Issuer lo implementa.
type TokenParser interface {
	Parse(raw string) (*jwtx.Claims, error)
}

// =================================================================================
// AUTHENTICATION MIDDLEWARES
// =================================================================================

// RequireAuth valida Authorization: Bearer <JWT> y guarda las claims en el contexto.
// Sin credencial responde 401 sin intentar validar; con credencial inválida, 403.
func RequireAuth(parser TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_request", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}

			claims, err := parser.Parse(raw)
			if err != nil {
				logger.From(r.Context()).Debug("bearer token rejected",
					logger.Component("auth"), logger.Err(err))
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extrae el token del header. false si no hay credencial bearer.
func bearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) < len("bearer ") || !strings.EqualFold(ah[:len("bearer ")], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(ah[len("bearer "):])
	return raw, raw != ""
}
