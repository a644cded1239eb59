// Package orders contiene el controller de órdenes.
package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/bestseller/internal/http/errors"
	"github.com/dropDatabas3/bestseller/internal/http/helpers"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
	svc "github.com/dropDatabas3/bestseller/internal/http/services/orders"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// OrdersController maneja las rutas /order y /booking.
type OrdersController struct {
	service svc.OrderService
}

// NewOrdersController crea el controller de órdenes.
func NewOrdersController(service svc.OrderService) *OrdersController {
	return &OrdersController{service: service}
}

// ListMine maneja GET /order: órdenes del comprador del token.
func (c *OrdersController) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := c.service.ListByBuyer(ctx, mw.MustGetEmail(ctx))
	if err != nil {
		c.fail(w, r, "ListMine", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, docs)
}

// Create maneja POST /order
func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}
	res, err := c.service.Create(r.Context(), body)
	if err != nil {
		c.fail(w, r, "Create", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ConfirmPayment maneja PUT /order/{id}
func (c *OrdersController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}
	res, err := c.service.ConfirmPayment(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		c.fail(w, r, "ConfirmPayment", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Booking maneja GET /booking/{id}
func (c *OrdersController) Booking(w http.ResponseWriter, r *http.Request) {
	doc, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "Booking", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, doc)
}

func (c *OrdersController) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr := helpers.MapStoreError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("orders request failed",
			logger.Layer("controller"),
			logger.Op("OrdersController."+op),
			logger.Err(err),
		)
	}
	errors.WriteError(w, appErr)
}
