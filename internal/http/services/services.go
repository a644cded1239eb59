// Package services agrupa los services HTTP por dominio.
// Este es el "composition root" de services: app.go arma Deps y llama New.
package services

import (
	"context"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/services/health"
	"github.com/dropDatabas3/bestseller/internal/http/services/orders"
	"github.com/dropDatabas3/bestseller/internal/http/services/payments"
	"github.com/dropDatabas3/bestseller/internal/http/services/products"
	"github.com/dropDatabas3/bestseller/internal/http/services/users"
	"github.com/dropDatabas3/bestseller/internal/payment"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	DAL     repository.DataAccessLayer
	Signer  users.TokenSigner
	Payment payment.Provider

	// InvalidateRole limpia el cache de roles (no-op si no hay cache).
	InvalidateRole func(ctx context.Context, email string)

	// ─── Configuración ───
	Currency            string
	LegacyProductByName bool
}

// Services agrupa todos los services.
type Services struct {
	Products products.ProductService
	Orders   orders.OrderService
	Users    users.UserService
	Payments payments.PaymentService
	Health   health.HealthService
}

// New crea todos los services con sus dependencias.
func New(d Deps) *Services {
	return &Services{
		Products: products.NewProductService(d.DAL.Products()),
		Orders: orders.NewOrderService(orders.Deps{
			Orders:              d.DAL.Orders(),
			Products:            d.DAL.Products(),
			LegacyProductByName: d.LegacyProductByName,
		}),
		Users: users.NewUserService(users.Deps{
			Users:          d.DAL.Users(),
			Signer:         d.Signer,
			InvalidateRole: d.InvalidateRole,
		}),
		Payments: payments.NewPaymentService(d.Payment, d.Currency),
		Health:   health.NewHealthService(d.DAL),
	}
}
