// Package products contiene el controller del catálogo de productos.
package products

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
	"github.com/dropDatabas3/bestseller/internal/http/helpers"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
	svc "github.com/dropDatabas3/bestseller/internal/http/services/products"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// ProductsController maneja las rutas de productos.
type ProductsController struct {
	service svc.ProductService
	// enforceOwner pisa sellerEmail con el email del token al crear.
	enforceOwner bool
}

// NewProductsController crea el controller de productos.
func NewProductsController(service svc.ProductService, enforceOwner bool) *ProductsController {
	return &ProductsController{service: service, enforceOwner: enforceOwner}
}

// ListAvailable maneja GET /products
func (c *ProductsController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	docs, err := c.service.ListAvailable(r.Context())
	c.writeList(w, r, "ListAvailable", docs, err)
}

// Get maneja GET /product/{id}
func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	doc, err := c.service.Get(ctx, id)
	if err != nil {
		c.fail(w, r, "Get", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, doc)
}

// ListByCategory maneja GET /category/{name}
func (c *ProductsController) ListByCategory(w http.ResponseWriter, r *http.Request) {
	docs, err := c.service.ListByCategory(r.Context(), chi.URLParam(r, "name"))
	c.writeList(w, r, "ListByCategory", docs, err)
}

// ListAdvertised maneja GET /advertised
func (c *ProductsController) ListAdvertised(w http.ResponseWriter, r *http.Request) {
	docs, err := c.service.ListAdvertised(r.Context())
	c.writeList(w, r, "ListAdvertised", docs, err)
}

// MyProducts maneja GET /my-product (token + seller)
func (c *ProductsController) MyProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := c.service.ListBySeller(ctx, mw.MustGetEmail(ctx))
	c.writeList(w, r, "MyProducts", docs, err)
}

// ListReported maneja GET /all-report (token + admin)
func (c *ProductsController) ListReported(w http.ResponseWriter, r *http.Request) {
	docs, err := c.service.ListReported(r.Context())
	c.writeList(w, r, "ListReported", docs, err)
}

// Create maneja POST /product
func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}

	owner := ""
	if c.enforceOwner {
		owner = mw.MustGetEmail(ctx)
	}

	res, err := c.service.Create(ctx, body, owner)
	if err != nil {
		c.fail(w, r, "Create", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Update maneja PUT /update-product/{id}
func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}

	res, err := c.service.Update(ctx, chi.URLParam(r, "id"), body)
	c.writeUpdate(w, r, "Update", res, err)
}

// Sold maneja PUT /sold/{id}
func (c *ProductsController) Sold(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.MarkSold(r.Context(), chi.URLParam(r, "id"))
	c.writeUpdate(w, r, "Sold", res, err)
}

// Available maneja PUT /available/{id}
func (c *ProductsController) Available(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.MarkAvailable(r.Context(), chi.URLParam(r, "id"))
	c.writeUpdate(w, r, "Available", res, err)
}

// Advertise maneja PUT /advertised/{id}
func (c *ProductsController) Advertise(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.Advertise(r.Context(), chi.URLParam(r, "id"))
	c.writeUpdate(w, r, "Advertise", res, err)
}

// Report maneja PUT /report/{id}
func (c *ProductsController) Report(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.Report(r.Context(), chi.URLParam(r, "id"))
	c.writeUpdate(w, r, "Report", res, err)
}

// ─── helpers ───

func (c *ProductsController) writeList(w http.ResponseWriter, r *http.Request, op string, docs []repository.Document, err error) {
	if err != nil {
		c.fail(w, r, op, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, docs)
}

func (c *ProductsController) writeUpdate(w http.ResponseWriter, r *http.Request, op string, res repository.UpdateResult, err error) {
	if err != nil {
		c.fail(w, r, op, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func (c *ProductsController) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr := helpers.MapStoreError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("products request failed",
			logger.Layer("controller"),
			logger.Op("ProductsController."+op),
			logger.Err(err),
		)
	}
	errors.WriteError(w, appErr)
}
