// Package router arma el árbol de rutas HTTP sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/bestseller/internal/authz"
	"github.com/dropDatabas3/bestseller/internal/config"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/http/controllers"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
)

// Deps contiene todo lo necesario para registrar las rutas.
type Deps struct {
	Controllers *controllers.Controllers

	// Tokens verifica el bearer; Roles resuelve el rol para los gates.
	Tokens mw.TokenParser
	Roles  authz.Resolver

	Policy      config.Policy
	CORSOrigins []string

	// Metrics sirve /metrics; nil lo deshabilita.
	Metrics http.Handler
}

// New crea el handler raíz con middlewares globales y todas las rutas.
//
//	request → RequestID → Logging → Recover → SecurityHeaders → CORS → Metrics
//	        → [RequireAuth] → [gate] → controller
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(d.CORSOrigins),
		mw.WithMetrics(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, errors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, errors.ErrMethodNotAllowed)
	})

	registerHealthRoutes(r, d)
	registerProductRoutes(r, d)
	registerOrderRoutes(r, d)
	registerUserRoutes(r, d)
	registerPaymentRoutes(r, d)

	return r
}

// gates arma los middlewares de auth que se repiten en las rutas.
type gates struct {
	token  mw.Middleware
	seller mw.Middleware
	admin  mw.Middleware
}

func newGates(d Deps) gates {
	return gates{
		token:  mw.RequireAuth(d.Tokens),
		seller: mw.RequireSellerOrAdmin(d.Roles),
		admin:  mw.RequireAdmin(d.Roles),
	}
}

// handle registra h con su cadena de middlewares (los nil se ignoran).
func handle(r chi.Router, method, pattern string, h http.HandlerFunc, mws ...mw.Middleware) {
	r.Method(method, pattern, mw.Chain(h, mws...))
}

// =================================================================================
// HEALTH
// =================================================================================

func registerHealthRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Health

	handle(r, http.MethodGet, "/", c.Root)
	handle(r, http.MethodGet, "/readyz", c.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
}

// =================================================================================
// PRODUCTS
// =================================================================================

func registerProductRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Products
	g := newGates(d)
	p := d.Policy

	// Públicas
	handle(r, http.MethodGet, "/products", c.ListAvailable)
	handle(r, http.MethodGet, "/product/{id}", c.Get)
	handle(r, http.MethodGet, "/category/{name}", c.ListByCategory)
	handle(r, http.MethodGet, "/advertised", c.ListAdvertised)

	// Token
	handle(r, http.MethodPost, "/product", c.Create, g.token)
	handle(r, http.MethodPut, "/update-product/{id}", c.Update,
		mw.When(p.UpdateProductRequiresAuth, g.token))
	handle(r, http.MethodPut, "/advertised/{id}", c.Advertise,
		g.token, mw.When(p.AdvertiseRequiresSeller, g.seller))
	handle(r, http.MethodPut, "/report/{id}", c.Report,
		g.token, mw.When(p.ReportRequiresSeller, g.seller))

	// Token + Seller/Admin
	handle(r, http.MethodPut, "/sold/{id}", c.Sold, g.token, g.seller)
	handle(r, http.MethodPut, "/available/{id}", c.Available, g.token, g.seller)
	handle(r, http.MethodGet, "/my-product", c.MyProducts, g.token, g.seller)

	// Token + Admin
	handle(r, http.MethodGet, "/all-report", c.ListReported, g.token, g.admin)
}

// =================================================================================
// ORDERS
// =================================================================================

func registerOrderRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Orders
	g := newGates(d)

	handle(r, http.MethodGet, "/order", c.ListMine, g.token)
	handle(r, http.MethodPost, "/order", c.Create)
	handle(r, http.MethodPut, "/order/{id}", c.ConfirmPayment, g.token)
	handle(r, http.MethodGet, "/booking/{id}", c.Booking)
}

// =================================================================================
// USERS
// =================================================================================

func registerUserRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Users
	g := newGates(d)
	p := d.Policy

	handle(r, http.MethodPut, "/user/type/{email}", c.SetRole,
		mw.When(p.RoleChangeRequiresAdmin, g.token), mw.When(p.RoleChangeRequiresAdmin, g.admin))
	handle(r, http.MethodPut, "/user/{email}", c.Login)
	handle(r, http.MethodGet, "/user/{email}", c.Get)

	handle(r, http.MethodGet, "/admin", c.CheckRole(types.RoleAdmin), g.token)
	handle(r, http.MethodGet, "/seller", c.CheckRole(types.RoleSeller), g.token)
	handle(r, http.MethodGet, "/buyer", c.CheckRole(types.RoleBuyer), g.token)

	handle(r, http.MethodGet, "/all-buyers", c.ListByRole(types.RoleBuyer))
	handle(r, http.MethodGet, "/all-sellers", c.ListByRole(types.RoleSeller), g.token)

	handle(r, http.MethodDelete, "/delete-user/{id}", c.Delete, g.token, g.admin)
	handle(r, http.MethodPut, "/verified/{id}", c.Verify, g.token, g.admin)
}

// =================================================================================
// PAYMENTS
// =================================================================================

func registerPaymentRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Payments
	g := newGates(d)

	handle(r, http.MethodPost, "/create-payment-intent", c.CreateIntent, g.token)
}
