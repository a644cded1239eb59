// Package payments contiene el controller de payment intents.
package payments

import (
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/bestseller/internal/http/dto"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
	"github.com/dropDatabas3/bestseller/internal/http/helpers"
	svc "github.com/dropDatabas3/bestseller/internal/http/services/payments"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
	"github.com/dropDatabas3/bestseller/internal/payment"
)

// PaymentsController maneja POST /create-payment-intent.
type PaymentsController struct {
	service svc.PaymentService
}

// NewPaymentsController crea el controller de pagos.
func NewPaymentsController(service svc.PaymentService) *PaymentsController {
	return &PaymentsController{service: service}
}

// CreateIntent maneja POST /create-payment-intent
func (c *PaymentsController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PaymentsController.CreateIntent"))

	body, err := helpers.ReadDocument(w, r)
	if err != nil {
		errors.WriteError(w, err)
		return
	}

	secret, err := c.service.CreateIntent(ctx, body)
	if err != nil {
		appErr := mapError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("create payment intent failed", logger.Err(err))
		}
		errors.WriteError(w, appErr)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.PaymentIntentResponse{ClientSecret: secret})
}

func mapError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, payment.ErrInvalidAmount):
		return errors.ErrInvalidFormat.WithDetail("resalePrice debe ser un número positivo").WithCause(err)
	case stderrors.Is(err, payment.ErrNotConfigured):
		return errors.ErrServiceUnavailable.WithDetail("pagos no configurados").WithCause(err)
	default:
		return helpers.MapStoreError(err)
	}
}
