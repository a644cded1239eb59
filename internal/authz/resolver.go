// Package authz resuelve el rol de un usuario a partir de su email.
//
// El rol vive en el documento del usuario (colección users). Los gates HTTP
// consultan un Resolver; nunca asumen un rol por defecto.
package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/metrics"
)

var (
	// ErrUserNotFound indica que no hay usuario para ese email.
	ErrUserNotFound = errors.New("authz: user not found")

	// ErrUnknownRole indica que el usuario tiene un rol fuera del enum.
	ErrUnknownRole = types.ErrUnknownRole
)

// Resolver clasifica una identidad en un rol.
type Resolver interface {
	ResolveRole(ctx context.Context, email string) (types.Role, error)
}

// Invalidator lo implementan los resolvers con estado (cache).
type Invalidator interface {
	Invalidate(ctx context.Context, email string)
}

// StoreResolver lee el rol directamente de la colección users.
type StoreResolver struct {
	users repository.DocumentCollection
}

// NewStoreResolver crea un resolver sobre la colección de usuarios.
func NewStoreResolver(users repository.DocumentCollection) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) ResolveRole(ctx context.Context, email string) (types.Role, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrUserNotFound
	}

	start := time.Now()
	doc, err := r.users.FindOne(ctx, repository.Filter{types.FieldEmail: email})
	metrics.RoleResolveLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("authz: lookup user: %w", err)
	}

	role, err := types.ParseRole(doc.String(types.FieldRole))
	if err != nil {
		return "", ErrUnknownRole
	}
	return role, nil
}

// IsDenied indica si el error es una negación (y no una falla del store).
func IsDenied(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrUnknownRole)
}
