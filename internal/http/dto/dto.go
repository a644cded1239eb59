// Package dto define los shapes de respuesta que no son documentos crudos del store.
package dto

import (
	"time"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
)

// LoginResponse es la respuesta de PUT /user/{email}: resultado crudo del upsert + token.
type LoginResponse struct {
	Result repository.UpdateResult `json:"result"`
	Token  string                  `json:"token"`
}

// PaymentIntentResponse expone solo el client secret del intent.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// HealthStatus estado de un componente.
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse es la respuesta de GET /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"` // ready | unavailable
	Driver     string                  `json:"driver,omitempty"`
	Components map[string]HealthStatus `json:"components"`
	Timestamp  time.Time               `json:"timestamp"`
}
