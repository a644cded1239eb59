// Package audit registra las acciones administrativas sobre usuarios y roles.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// Eventos auditados.
const (
	EventRoleChanged  = "user.role_changed"
	EventUserDeleted  = "user.deleted"
	EventUserVerified = "user.verified"
	EventAdminBoot    = "user.admin_bootstrapped"
)

// Log escribe un evento de auditoría en el logger "audit" del request.
// El actor es el email del token si lo hay.
func Log(ctx context.Context, event, actor string, fields ...zap.Field) {
	fs := make([]zap.Field, 0, len(fields)+2)
	fs = append(fs, logger.String("event", event))
	if actor != "" {
		fs = append(fs, logger.String("actor", actor))
	}
	fs = append(fs, fields...)
	logger.From(ctx).Named("audit").Info("audit", fs...)
}
