package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/bestseller/internal/authz"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
	"github.com/dropDatabas3/bestseller/internal/metrics"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// =================================================================================
// ROLE GATES
// =================================================================================
//
// Los gates corren siempre después de RequireAuth. Resuelven el rol del caller
// contra el store y deciden antes de llegar al handler.

const (
	GateSellerOrAdmin = "seller_or_admin"
	GateAdmin         = "admin"
)

// RequireSellerOrAdmin deja pasar solo a Seller o Admin.
func RequireSellerOrAdmin(resolver authz.Resolver) Middleware {
	return requireRole(resolver, GateSellerOrAdmin, types.Role.CanManageListings)
}

// RequireAdmin deja pasar solo a Admin.
func RequireAdmin(resolver authz.Resolver) Middleware {
	return requireRole(resolver, GateAdmin, types.Role.IsAdmin)
}

func requireRole(resolver authz.Resolver, gate string, allowed func(types.Role) bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			email := MustGetEmail(ctx)
			log := logger.From(ctx).With(logger.Gate(gate), logger.Email(email))

			role, err := resolver.ResolveRole(ctx, email)
			if err != nil {
				if authz.IsDenied(err) {
					metrics.GateDecisions.WithLabelValues(gate, "deny").Inc()
					log.Info("gate denied", logger.Err(err))
					errors.WriteError(w, errors.ErrForbidden)
					return
				}
				metrics.GateDecisions.WithLabelValues(gate, "error").Inc()
				log.Error("gate role lookup failed", logger.Err(err))
				errors.WriteError(w, errors.ErrInternalServerError.WithCause(err))
				return
			}

			if !allowed(role) {
				metrics.GateDecisions.WithLabelValues(gate, "deny").Inc()
				log.Info("gate denied", logger.Role(role.String()))
				errors.WriteError(w, errors.ErrForbidden)
				return
			}

			metrics.GateDecisions.WithLabelValues(gate, "allow").Inc()
			next.ServeHTTP(w, r.WithContext(withRole(ctx, role)))
		})
	}
}
