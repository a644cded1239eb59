// Package payment crea payment intents contra el proveedor de pagos.
//
// El servidor solo crea el intent y devuelve el client secret; la
// confirmación la hace el cliente y luego llama a PUT /order/{id}.
package payment

import (
	"context"
	"errors"
	"math"
	"strings"
)

var (
	// ErrInvalidAmount indica un precio que no produce un monto positivo.
	ErrInvalidAmount = errors.New("payment: invalid amount")
	// ErrNotConfigured indica que no hay proveedor configurado.
	ErrNotConfigured = errors.New("payment: provider not configured")
)

// Intent es lo que el proveedor devuelve al crear un payment intent.
type Intent struct {
	ID           string
	ClientSecret string
}

// Provider crea payment intents.
type Provider interface {
	// CreateIntent crea un intent por amount unidades menores (centavos) en currency.
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// AmountFromPrice convierte un precio decimal a unidades menores.
// Redondea al centavo más cercano: 19.99 -> 1999 (truncar daría 1998).
func AmountFromPrice(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// NormalizeCurrency pasa el código ISO a minúsculas; vacío es "usd".
func NormalizeCurrency(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return "usd"
	}
	return c
}
