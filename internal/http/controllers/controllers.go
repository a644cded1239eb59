// Package controllers agrupa todos los controllers HTTP.
// Este es el "composition root" de controllers:
//
//	svcs := services.New(deps)       ← services con sus dependencias
//	ctrls := controllers.New(svcs)   ← controllers con services inyectados
//	router.New(router.Deps{...})     ← rutas con controllers y gates
package controllers

import (
	"github.com/dropDatabas3/bestseller/internal/http/controllers/health"
	"github.com/dropDatabas3/bestseller/internal/http/controllers/orders"
	"github.com/dropDatabas3/bestseller/internal/http/controllers/payments"
	"github.com/dropDatabas3/bestseller/internal/http/controllers/products"
	"github.com/dropDatabas3/bestseller/internal/http/controllers/users"
	"github.com/dropDatabas3/bestseller/internal/http/services"
)

// Options ajustes de comportamiento de los controllers.
type Options struct {
	// EnforceProductOwner toma sellerEmail del token en POST /product.
	EnforceProductOwner bool
}

// Controllers agrupa todos los controllers por dominio.
type Controllers struct {
	Products *products.ProductsController
	Orders   *orders.OrdersController
	Users    *users.UsersController
	Payments *payments.PaymentsController
	Health   *health.HealthController
}

// New crea el agregador de controllers. Es el único lugar donde se instancian.
func New(svc *services.Services, opts Options) *Controllers {
	return &Controllers{
		Products: products.NewProductsController(svc.Products, opts.EnforceProductOwner),
		Orders:   orders.NewOrdersController(svc.Orders),
		Users:    users.NewUsersController(svc.Users),
		Payments: payments.NewPaymentsController(svc.Payments),
		Health:   health.NewHealthController(svc.Health),
	}
}
