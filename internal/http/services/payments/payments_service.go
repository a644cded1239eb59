// Package payments contiene el service de creación de payment intents.
package payments

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
	"github.com/dropDatabas3/bestseller/internal/payment"
)

// PaymentService crea intents a partir del precio de reventa del producto.
type PaymentService interface {
	// CreateIntent retorna el client secret del intent creado.
	CreateIntent(ctx context.Context, body repository.Document) (string, error)
}

type paymentService struct {
	provider payment.Provider
	currency string
}

// NewPaymentService crea el service con el provider y la moneda configurados.
func NewPaymentService(provider payment.Provider, currency string) PaymentService {
	if provider == nil {
		provider = payment.Disabled{}
	}
	return &paymentService{provider: provider, currency: payment.NormalizeCurrency(currency)}
}

func (s *paymentService) CreateIntent(ctx context.Context, body repository.Document) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("payments"),
		logger.Op("CreateIntent"),
	)

	price, err := resalePrice(body)
	if err != nil {
		return "", err
	}
	amount, err := payment.AmountFromPrice(price)
	if err != nil {
		return "", err
	}

	intent, err := s.provider.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		log.Error("create intent failed", logger.Int64("amount", amount), logger.Err(err))
		return "", err
	}
	log.Info("intent created",
		logger.String("intent_id", intent.ID),
		logger.Int64("amount", amount),
		logger.String("currency", s.currency),
	)
	return intent.ClientSecret, nil
}

// resalePrice acepta número JSON o string numérico.
func resalePrice(body repository.Document) (float64, error) {
	v, ok := body[types.FieldResalePrice]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", repository.ErrInvalidInput, types.FieldResalePrice)
	}
	switch p := v.(type) {
	case float64:
		return p, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, payment.ErrInvalidAmount
		}
		return f, nil
	default:
		return 0, payment.ErrInvalidAmount
	}
}
