// Package bootstrap asegura el estado mínimo del store al arrancar.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/bestseller/internal/audit"
	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
	"github.com/dropDatabas3/bestseller/internal/util"
)

// AdminBootstrapConfig configuración del bootstrap de admin.
type AdminBootstrapConfig struct {
	Users repository.DocumentCollection
	// AdminEmail a promover si no hay ningún Admin. Vacío desactiva el bootstrap.
	AdminEmail string
}

// EnsureAdmin crea (o promueve) un Admin si la colección no tiene ninguno.
// Retorna true si escribió algo.
func EnsureAdmin(ctx context.Context, cfg AdminBootstrapConfig) (bool, error) {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" {
		return false, nil
	}
	log := logger.From(ctx).With(logger.Component("bootstrap"), logger.Email(util.MaskEmail(email)))

	admins, err := cfg.Users.Find(ctx, repository.Filter{types.FieldRole: types.RoleAdmin.String()})
	if err != nil {
		return false, fmt.Errorf("bootstrap: list admins: %w", err)
	}
	if len(admins) > 0 {
		log.Debug("admin already present, skipping bootstrap", logger.Count(len(admins)))
		return false, nil
	}

	res, err := cfg.Users.UpdateOne(ctx,
		repository.Filter{types.FieldEmail: email},
		repository.Document{types.FieldRole: types.RoleAdmin.String()},
		repository.UpdateOptions{Upsert: true},
	)
	if err != nil {
		return false, fmt.Errorf("bootstrap: upsert admin: %w", err)
	}
	audit.Log(ctx, audit.EventAdminBoot, "", logger.Email(util.MaskEmail(email)), logger.Bool("created", res.UpsertedCount > 0))
	return true, nil
}
