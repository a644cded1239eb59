// Package users contiene el controller de usuarios y roles.
package users

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/http/dto"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
	"github.com/dropDatabas3/bestseller/internal/http/helpers"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
	svc "github.com/dropDatabas3/bestseller/internal/http/services/users"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// UsersController maneja las rutas de usuarios.
type UsersController struct {
	service svc.UserService
}

// NewUsersController crea el controller de usuarios.
func NewUsersController(service svc.UserService) *UsersController {
	return &UsersController{service: service}
}

// Login maneja PUT /user/{email}: upsert + token.
func (c *UsersController) Login(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}
	res, err := c.service.Login(r.Context(), chi.URLParam(r, "email"), body)
	if err != nil {
		c.fail(w, r, "Login", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{Result: res.Result, Token: res.Token})
}

// SetRole maneja PUT /user/type/{email}
func (c *UsersController) SetRole(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}
	res, err := c.service.SetRole(r.Context(), chi.URLParam(r, "email"), body)
	if err != nil {
		c.fail(w, r, "SetRole", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Get maneja GET /user/{email}
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := c.service.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		c.fail(w, r, "Get", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, doc)
}

// CheckRole arma el handler de GET /admin, /seller y /buyer.
// Responde el usuario del token si su rol es role, o {}.
func (c *UsersController) CheckRole(role types.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		doc, err := c.service.CheckRole(ctx, mw.MustGetEmail(ctx), role)
		if err != nil {
			c.fail(w, r, "CheckRole", err)
			return
		}
		helpers.WriteJSON(w, http.StatusOK, doc)
	}
}

// ListByRole arma el handler de GET /all-buyers y /all-sellers.
func (c *UsersController) ListByRole(role types.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := c.service.ListByRole(r.Context(), role)
		if err != nil {
			c.fail(w, r, "ListByRole", err)
			return
		}
		helpers.WriteJSON(w, http.StatusOK, docs)
	}
}

// Delete maneja DELETE /delete-user/{id} (token + admin)
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "Delete", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Verify maneja PUT /verified/{id} (token + admin)
func (c *UsersController) Verify(w http.ResponseWriter, r *http.Request) {
	res, err := c.service.Verify(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, "Verify", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

func mapError(err error) *errors.AppError {
	if stderrors.Is(err, types.ErrUnknownRole) {
		return errors.ErrInvalidFormat.WithDetail("role debe ser Buyer, Seller o Admin").WithCause(err)
	}
	return helpers.MapStoreError(err)
}

func (c *UsersController) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("users request failed",
			logger.Layer("controller"),
			logger.Op("UsersController."+op),
			logger.Err(err),
		)
	}
	errors.WriteError(w, appErr)
}
