// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/bestseller/internal/http/helpers"
	svc "github.com/dropDatabas3/bestseller/internal/http/services/health"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// HealthController maneja / y /readyz.
type HealthController struct {
	service svc.HealthService
}

// NewHealthController crea un nuevo controller de health check.
func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Root maneja GET /
func (c *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	helpers.WriteText(w, http.StatusOK, "Server is running")
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	response := c.service.Check(ctx)

	statusCode := http.StatusOK
	if response.Status == "unavailable" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.From(ctx).Debug("health check completed",
		logger.Layer("controller"),
		logger.Op("HealthController.Readyz"),
		logger.String("status", response.Status),
	)
	helpers.WriteJSON(w, statusCode, response)
}
