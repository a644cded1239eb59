// Package health contiene el service para health checks.
package health

import (
	"context"
	"time"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/dto"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

const pingTimeout = 2 * time.Second

type healthService struct {
	dal repository.DataAccessLayer
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(dal repository.DataAccessLayer) HealthService {
	return &healthService{dal: dal}
}

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	resp := dto.HealthResponse{
		Status:     "ready",
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}
	if s.dal == nil {
		resp.Status = "unavailable"
		resp.Components["store"] = dto.HealthStatus{Status: "unavailable", Error: repository.ErrNoDatabase.Error()}
		return resp
	}
	resp.Driver = s.dal.Driver()

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.dal.Ping(pctx); err != nil {
		logger.From(ctx).Warn("store ping failed",
			logger.Layer("service"),
			logger.Component("health"),
			logger.Driver(resp.Driver),
			logger.Err(err),
		)
		resp.Status = "unavailable"
		resp.Components["store"] = dto.HealthStatus{Status: "unavailable", Error: err.Error()}
		return resp
	}
	resp.Components["store"] = dto.HealthStatus{Status: "ok"}
	return resp
}
